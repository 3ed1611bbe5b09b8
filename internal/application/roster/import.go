package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"uav-roster/internal/domain/member"
)

// 匯入欄位順序。
const (
	colName = iota
	colPhone
	colEmail
	colAccount
	colGroup
	colRemarks
	colStudentID
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV 解析以逗號分隔的成員清單，每行一筆。
//
// 第一欄包含 "name"（不分大小寫）或「姓名」的第一行視為標題列並略過；姓名為空的行略過。
// 內容格式錯誤時整批失敗，沒有任何有效資料時回傳 member.ErrNoValidRecords。
func ParseCSV(r io.Reader) ([]Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read import: %v", member.ErrParse, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: import is not valid UTF-8", member.ErrParse)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// 名字或備註中的單一引號視為一般字元。
	cr.LazyQuotes = true

	var out []Profile
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", member.ErrParse, err)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		p := Profile{
			Name:      column(rec, colName),
			Phone:     column(rec, colPhone),
			Email:     column(rec, colEmail),
			Account:   column(rec, colAccount),
			Group:     column(rec, colGroup),
			Remarks:   column(rec, colRemarks),
			StudentID: column(rec, colStudentID),
		}
		if p.Name == "" {
			continue
		}
		if p.Group == "" {
			p.Group = member.DefaultGroup
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, member.ErrNoValidRecords
	}
	return out, nil
}

func isHeader(rec []string) bool {
	first := column(rec, colName)
	return strings.Contains(strings.ToLower(first), "name") || strings.Contains(first, "姓名")
}

func column(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
