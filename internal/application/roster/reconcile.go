package roster

import (
	"fmt"
	"strings"
	"time"

	"uav-roster/internal/domain/member"

	"github.com/google/uuid"
)

// Action 為提案對名單造成的變更類型。
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// MatchKind 說明提案如何對應到既有成員。
type MatchKind string

const (
	MatchNone MatchKind = ""
	MatchID   MatchKind = "id"
	MatchName MatchKind = "name"
)

// Profile 為手動輸入或匯入的成員基本資料。
type Profile struct {
	Name      string
	StudentID string
	Phone     string
	Email     string
	Account   string
	Group     string
	Remarks   string

	// Task 為新成員的初始任務；nil 時使用預設任務。更新既有成員時忽略。
	Task *member.Task
}

// Proposal 描述一筆尚未提交的名單變更。
type Proposal struct {
	Action            Action
	Member            member.Member
	MatchedBy         MatchKind
	NeedsConfirmation bool
	Description       string
}

// Batch 為一次匯入的所有提案；匯入一律需要確認。
type Batch struct {
	Proposals   []Proposal
	Count       int
	Created     int
	Updated     int
	Description string
}

// Engine 依身分規則決定新增或更新，本身不保存狀態。
type Engine struct {
	now   func() time.Time
	loc   *time.Location
	newID func() string
}

// NewEngine 建立名單引擎；loc 與 now 決定「今天」的日期（預設任務期限），now 為 nil 時使用 time.Now。
func NewEngine(loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		now:   now,
		loc:   loc,
		newID: uuid.NewString,
	}
}

func (e *Engine) today() member.Date {
	return member.DateOf(e.now().In(e.loc))
}

// Manual 處理單筆手動輸入。editID 非空時為編輯既有成員，否則先以姓名比對。
func (e *Engine) Manual(members []member.Member, p Profile, editID string) (Proposal, error) {
	p = cleanProfile(p)
	if p.Name == "" {
		return Proposal{}, fmt.Errorf("%w: member name is required", member.ErrValidation)
	}

	if editID != "" {
		idx := IndexOf(members, editID)
		if idx < 0 {
			return Proposal{}, fmt.Errorf("%w: %s", member.ErrNotFound, editID)
		}
		return Proposal{
			Action:      ActionUpdate,
			Member:      merge(members[idx], p),
			MatchedBy:   MatchID,
			Description: fmt.Sprintf("Update member %q.", p.Name),
		}, nil
	}

	if idx := indexOfName(members, p.Name); idx >= 0 {
		return Proposal{
			Action:            ActionUpdate,
			Member:            merge(members[idx], p),
			MatchedBy:         MatchName,
			NeedsConfirmation: true,
			Description:       fmt.Sprintf("Member %q already exists. Update their info?", p.Name),
		}, nil
	}

	created, err := e.create(p)
	if err != nil {
		return Proposal{}, err
	}
	return Proposal{
		Action:      ActionCreate,
		Member:      created,
		Description: fmt.Sprintf("Create member %q.", p.Name),
	}, nil
}

// Import 將多筆資料對應到匯入前的名單；同批次內的資料彼此不互相比對。
func (e *Engine) Import(members []member.Member, profiles []Profile) (Batch, error) {
	var b Batch
	for _, p := range profiles {
		p = cleanProfile(p)
		if p.Name == "" {
			continue
		}
		if idx := indexOfName(members, p.Name); idx >= 0 {
			b.Proposals = append(b.Proposals, Proposal{
				Action:    ActionUpdate,
				Member:    merge(members[idx], p),
				MatchedBy: MatchName,
			})
			b.Updated++
			continue
		}
		created, err := e.create(p)
		if err != nil {
			return Batch{}, err
		}
		b.Proposals = append(b.Proposals, Proposal{Action: ActionCreate, Member: created})
		b.Created++
	}
	b.Count = len(b.Proposals)
	if b.Count == 0 {
		return Batch{}, member.ErrNoValidRecords
	}
	b.Description = fmt.Sprintf("Parsed %d members. Import?", b.Count)
	if b.Updated > 0 {
		b.Description = fmt.Sprintf("Parsed %d members (%d existing will be updated). Import?", b.Count, b.Updated)
	}
	return b, nil
}

// Delete 產生刪除提案；刪除無法復原，因此一律需要確認。
func (e *Engine) Delete(members []member.Member, id string) (Proposal, error) {
	idx := IndexOf(members, id)
	if idx < 0 {
		return Proposal{}, fmt.Errorf("%w: %s", member.ErrNotFound, id)
	}
	return Proposal{
		Action:            ActionDelete,
		Member:            members[idx].Clone(),
		MatchedBy:         MatchID,
		NeedsConfirmation: true,
		Description:       fmt.Sprintf("Delete member %q? This cannot be undone.", members[idx].Name),
	}, nil
}

// Apply 依序套用提案並回傳新的名單；輸入切片不會被修改。
func Apply(members []member.Member, proposals ...Proposal) ([]member.Member, error) {
	out := make([]member.Member, 0, len(members)+len(proposals))
	for _, m := range members {
		out = append(out, m.Clone())
	}
	for _, p := range proposals {
		switch p.Action {
		case ActionCreate:
			if IndexOf(out, p.Member.ID) >= 0 {
				return nil, fmt.Errorf("%w: duplicate member id %q", member.ErrValidation, p.Member.ID)
			}
			out = append(out, p.Member.Clone())
		case ActionUpdate:
			idx := IndexOf(out, p.Member.ID)
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s", member.ErrNotFound, p.Member.ID)
			}
			out[idx] = p.Member.Clone()
		case ActionDelete:
			idx := IndexOf(out, p.Member.ID)
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s", member.ErrNotFound, p.Member.ID)
			}
			out = append(out[:idx], out[idx+1:]...)
		default:
			return nil, fmt.Errorf("unsupported action: %s", p.Action)
		}
	}
	return out, nil
}

// IndexOf 依 id 找出位置，找不到回傳 -1。
func IndexOf(members []member.Member, id string) int {
	for i, m := range members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// 姓名比對區分大小寫。
func indexOfName(members []member.Member, name string) int {
	for i, m := range members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (e *Engine) create(p Profile) (member.Member, error) {
	task := member.PlaceholderTask(e.today(), p.Group)
	if p.Task != nil {
		task = *p.Task
		if task.Group == "" {
			task.Group = p.Group
		}
		if err := task.Validate(); err != nil {
			return member.Member{}, err
		}
	}
	return member.Member{
		ID:           e.newID(),
		Name:         p.Name,
		StudentID:    p.StudentID,
		Phone:        p.Phone,
		Email:        p.Email,
		Account:      p.Account,
		Group:        p.Group,
		Remarks:      p.Remarks,
		CurrentTask:  task,
		Stats:        member.Stats{},
		History:      []member.Task{},
		Score:        0,
		ScoreHistory: []member.ScoreRecord{},
	}, nil
}

// merge 以新的基本資料覆蓋，任務、統計、積分原樣保留。
func merge(existing member.Member, p Profile) member.Member {
	out := existing.Clone()
	out.Name = p.Name
	out.StudentID = p.StudentID
	out.Phone = p.Phone
	out.Email = p.Email
	out.Account = p.Account
	out.Group = p.Group
	out.Remarks = p.Remarks
	return out
}

func cleanProfile(p Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.Account = strings.TrimSpace(p.Account)
	p.Group = strings.TrimSpace(p.Group)
	p.Remarks = strings.TrimSpace(p.Remarks)
	if p.Group == "" {
		p.Group = member.DefaultGroup
	}
	return p
}
