package roster

import (
	"errors"
	"strings"
	"testing"

	"uav-roster/internal/domain/member"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNames []string
		wantErr   error
	}{
		{
			name:      "Chinese Header And Blank Name",
			input:     "姓名,電話\nAlice,111\n,222\nBob,333",
			wantNames: []string{"Alice", "Bob"},
		},
		{
			name:      "English Header Case Insensitive",
			input:     "Member NAME,phone\nCarol,1",
			wantNames: []string{"Carol"},
		},
		{
			name:      "No Header",
			input:     "Alice,111\nBob,222\n",
			wantNames: []string{"Alice", "Bob"},
		},
		{
			name:      "Header Only In Second Column Is Data",
			input:     "Alice,name\nBob",
			wantNames: []string{"Alice", "Bob"},
		},
		{
			name:      "CRLF And BOM",
			input:     "\ufeff姓名,電話\r\nDan,444\r\n\r\n",
			wantNames: []string{"Dan"},
		},
		{
			name:    "Only Header",
			input:   "name,phone\n",
			wantErr: member.ErrNoValidRecords,
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: member.ErrNoValidRecords,
		},
		{
			name:      "Stray Quote In Name",
			input:     "Alice,111\nO\"Neil,222\nBob,333",
			wantNames: []string{"Alice", "O\"Neil", "Bob"},
		},
		{
			name:    "Invalid UTF-8",
			input:   "Alice,\xff\xfe",
			wantErr: member.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("expected %d records, got %d (%+v)", len(tt.wantNames), len(got), got)
			}
			for i, name := range tt.wantNames {
				if got[i].Name != name {
					t.Errorf("record %d: expected %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestParseCSV_Columns(t *testing.T) {
	got, err := ParseCSV(strings.NewReader(" Alice , 0912 ,a@x.io,alice01,電裝控制,隊長,B11\nBob,1\nCarol,2,c@x.io,c,,,S3,extra"))
	if err != nil {
		t.Fatal(err)
	}
	want := Profile{Name: "Alice", Phone: "0912", Email: "a@x.io", Account: "alice01", Group: member.GroupElectrical, Remarks: "隊長", StudentID: "B11"}
	if got[0].Name != want.Name || got[0].Phone != want.Phone || got[0].Email != want.Email ||
		got[0].Account != want.Account || got[0].Group != want.Group || got[0].Remarks != want.Remarks ||
		got[0].StudentID != want.StudentID {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
	if got[1].Group != member.DefaultGroup || got[1].Email != "" || got[1].StudentID != "" {
		t.Errorf("missing trailing columns should default: %+v", got[1])
	}
	if got[2].Group != member.DefaultGroup || got[2].StudentID != "S3" {
		t.Errorf("blank group should default and extra columns be ignored: %+v", got[2])
	}
}

func TestImportFlow_TwoCreatesFromSpreadsheet(t *testing.T) {
	profiles, err := ParseCSV(strings.NewReader("姓名,電話\nAlice,111\n,222\nBob,333"))
	if err != nil {
		t.Fatal(err)
	}
	batch, err := newTestEngine().Import(nil, profiles)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Created != 2 || batch.Proposals[0].Member.Name != "Alice" || batch.Proposals[1].Member.Name != "Bob" {
		t.Errorf("unexpected batch: %+v", batch)
	}
	if batch.Description != "Parsed 2 members. Import?" {
		t.Errorf("unexpected description %q", batch.Description)
	}
}
