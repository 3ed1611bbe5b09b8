package club

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"uav-roster/internal/application/ledger"
	"uav-roster/internal/application/roster"
	"uav-roster/internal/application/taskboard"
	"uav-roster/internal/application/view"
	"uav-roster/internal/domain/member"

	"github.com/google/uuid"
)

// Repository 為整份文件的讀取與整批取代；不支援部分更新。
type Repository interface {
	Load(ctx context.Context) (member.AppData, error)
	Save(ctx context.Context, members []member.Member) error
}

// Announcer 於積分異動成功儲存後發出通知。
type Announcer interface {
	AnnounceScore(ctx context.Context, m member.Member, rec member.ScoreRecord) error
}

// MutationObserver 收集每次異動的結果（metrics 使用）。
type MutationObserver interface {
	ObserveMutation(kind string, err error)
}

// Confirm 由呼叫端決定需要確認的變更是否執行；nil 視為拒絕。
type Confirm func(Plan) bool

// PlanKind 為需要經過 Plan 的異動類型。
type PlanKind string

const (
	PlanMember PlanKind = "member"
	PlanImport PlanKind = "import"
	PlanDelete PlanKind = "delete"
)

// Plan 描述一次待提交的名單變更。
type Plan struct {
	Kind              PlanKind
	TargetID          string
	NeedsConfirmation bool
	Description       string
	Count             int
	Proposals         []roster.Proposal
}

// Result 為提交後的結果與新狀態。
type Result struct {
	Plan Plan
	Data member.AppData
}

// Options 為 Service 的選用依賴。
type Options struct {
	Location  *time.Location
	Logger    *slog.Logger
	Announcer Announcer
	Observer  MutationObserver
	// Now 為服務與各引擎共用的時鐘，nil 時使用 time.Now。
	Now func() time.Time
}

// Service 持有唯一一份記憶體狀態：每次異動都在副本上計算、整份儲存成功後才替換。
type Service struct {
	mu     sync.Mutex
	repo   Repository
	state  member.AppData
	loaded bool

	roster    *roster.Engine
	ledger    *ledger.Engine
	announcer Announcer
	observer  MutationObserver
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	newID     func() string
}

// NewService 建立服務；狀態於第一次使用或呼叫 Load 時載入。
func NewService(repo Repository, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Service{
		repo:      repo,
		announcer: opts.Announcer,
		observer:  opts.Observer,
		logger:    logger,
		loc:       loc,
		now:       now,
		newID:     uuid.NewString,
	}
	s.roster = roster.NewEngine(loc, s.clock)
	s.ledger = ledger.NewEngine(s.clock)
	return s
}

func (s *Service) clock() time.Time { return s.now() }

// Today 回傳社團時區的今天。
func (s *Service) Today() member.Date {
	return member.DateOf(s.now().In(s.loc))
}

// Load 從儲存層重新讀取並正規化文件，取代記憶體狀態。
func (s *Service) Load(ctx context.Context) (member.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return member.AppData{}, err
	}
	return s.state.Clone(), nil
}

// Snapshot 回傳目前狀態的副本。
func (s *Service) Snapshot(ctx context.Context) (member.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return member.AppData{}, err
	}
	return s.state.Clone(), nil
}

// AddMember 手動新增或編輯成員；姓名重複時需經 confirm 同意才會覆蓋基本資料。
func (s *Service) AddMember(ctx context.Context, p roster.Profile, editID string, confirm Confirm) (res Result, err error) {
	defer s.observe("member_upsert", &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return Result{}, err
	}

	prop, err := s.roster.Manual(s.state.Members, p, editID)
	if err != nil {
		return Result{}, err
	}
	plan := Plan{
		Kind:              PlanMember,
		NeedsConfirmation: prop.NeedsConfirmation,
		Description:       prop.Description,
		Count:             1,
		Proposals:         []roster.Proposal{prop},
	}
	if prop.Action == roster.ActionUpdate {
		plan.TargetID = prop.Member.ID
	}
	return s.commitPlan(ctx, plan, confirm)
}

// ImportCSV 解析匯入檔後交由 ImportMembers 處理；解析失敗時不會提交任何資料。
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, confirm Confirm) (Result, error) {
	profiles, err := roster.ParseCSV(r)
	if err != nil {
		s.observe("import", &err)
		return Result{}, err
	}
	return s.ImportMembers(ctx, profiles, confirm)
}

// ImportMembers 批次匯入；每筆只和匯入前的名單比對，整批一律需要確認。
func (s *Service) ImportMembers(ctx context.Context, profiles []roster.Profile, confirm Confirm) (res Result, err error) {
	defer s.observe("import", &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return Result{}, err
	}

	batch, err := s.roster.Import(s.state.Members, profiles)
	if err != nil {
		return Result{}, err
	}
	plan := Plan{
		Kind:              PlanImport,
		NeedsConfirmation: true,
		Description:       batch.Description,
		Count:             batch.Count,
		Proposals:         batch.Proposals,
	}
	return s.commitPlan(ctx, plan, confirm)
}

// DeleteMember 刪除成員；無法復原，必須經過 confirm。
func (s *Service) DeleteMember(ctx context.Context, id string, confirm Confirm) (res Result, err error) {
	defer s.observe("member_delete", &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return Result{}, err
	}

	prop, err := s.roster.Delete(s.state.Members, id)
	if err != nil {
		return Result{}, err
	}
	plan := Plan{
		Kind:              PlanDelete,
		TargetID:          id,
		NeedsConfirmation: true,
		Description:       prop.Description,
		Count:             1,
		Proposals:         []roster.Proposal{prop},
	}
	return s.commitPlan(ctx, plan, confirm)
}

// RecordScore 對單一成員記錄積分異動並回傳更新後的成員。
func (s *Service) RecordScore(ctx context.Context, id string, adj ledger.Adjustment) (member.Member, error) {
	updated, err := s.updateMember(ctx, "score", id, func(m member.Member) (member.Member, error) {
		return s.ledger.Record(m, adj)
	})
	if err != nil {
		return member.Member{}, err
	}

	if s.announcer != nil {
		if aerr := s.announcer.AnnounceScore(ctx, updated, updated.ScoreHistory[0]); aerr != nil {
			s.logger.Warn("score announcement failed",
				slog.String("member_id", updated.ID),
				slog.String("error", aerr.Error()),
			)
		}
	}
	return updated, nil
}

// UpdateTask 更新成員目前的任務。
func (s *Service) UpdateTask(ctx context.Context, id string, t member.Task) (member.Member, error) {
	return s.updateMember(ctx, "task_update", id, func(m member.Member) (member.Member, error) {
		return taskboard.UpdateTask(m, t)
	})
}

// ArchiveTask 將目前任務以 outcome 結案移入歷史並換上 next。
func (s *Service) ArchiveTask(ctx context.Context, id string, outcome member.Outcome, next member.Task) (member.Member, error) {
	return s.updateMember(ctx, "task_archive", id, func(m member.Member) (member.Member, error) {
		return taskboard.Archive(m, outcome, next)
	})
}

// Reorder 將成員移到指定位置（任務表的手動排序）。
func (s *Service) Reorder(ctx context.Context, movedID string, target int) (data member.AppData, err error) {
	defer s.observe("reorder", &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return member.AppData{}, err
	}
	return s.reorderLocked(ctx, movedID, target)
}

// ReorderOver 將成員移到 overID 目前所在的位置（拖放的放置目標）。
func (s *Service) ReorderOver(ctx context.Context, movedID, overID string) (data member.AppData, err error) {
	defer s.observe("reorder", &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return member.AppData{}, err
	}
	target := roster.IndexOf(s.state.Members, overID)
	if target < 0 {
		return member.AppData{}, fmt.Errorf("%w: %s", member.ErrNotFound, overID)
	}
	return s.reorderLocked(ctx, movedID, target)
}

func (s *Service) reorderLocked(ctx context.Context, movedID string, target int) (member.AppData, error) {
	members, err := roster.Reorder(s.state.Members, movedID, target)
	if err != nil {
		return member.AppData{}, err
	}
	next := member.AppData{Members: members}
	if err := s.save(ctx, next); err != nil {
		return member.AppData{}, err
	}
	return s.state.Clone(), nil
}

// ReplaceAll 以整份名單取代目前文件（正規化並檢查 id 唯一後才儲存）。
func (s *Service) ReplaceAll(ctx context.Context, members []member.Member) (data member.AppData, err error) {
	defer s.observe("replace_all", &err)
	s.mu.Lock()
	defer s.mu.Unlock()

	next := member.Normalize(member.AppData{Members: members}, s.Today(), s.newID)
	if err := s.save(ctx, next); err != nil {
		return member.AppData{}, err
	}
	s.loaded = true
	return s.state.Clone(), nil
}

// Ranking 回傳依積分排序的名單，search 為姓名關鍵字。
func (s *Service) Ranking(ctx context.Context, search string) ([]view.RankedMember, error) {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return view.Ranked(data.Members, search), nil
}

// Dashboard 回傳任務表（儲存順序 + 逾期旗標）。
func (s *Service) Dashboard(ctx context.Context) ([]view.DashboardRow, error) {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return view.Dashboard(data.Members, s.Today()), nil
}

// Member 依 id 取得成員。
func (s *Service) Member(ctx context.Context, id string) (member.Member, error) {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return member.Member{}, err
	}
	idx := data.Find(id)
	if idx < 0 {
		return member.Member{}, fmt.Errorf("%w: %s", member.ErrNotFound, id)
	}
	return data.Members[idx], nil
}

func (s *Service) updateMember(ctx context.Context, kind, id string, fn func(member.Member) (member.Member, error)) (updated member.Member, err error) {
	defer s.observe(kind, &err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return member.Member{}, err
	}

	idx := s.state.Find(id)
	if idx < 0 {
		return member.Member{}, fmt.Errorf("%w: %s", member.ErrNotFound, id)
	}
	updated, err = fn(s.state.Members[idx])
	if err != nil {
		return member.Member{}, err
	}
	next := s.state.Clone()
	next.Members[idx] = updated
	if err := s.save(ctx, next); err != nil {
		return member.Member{}, err
	}
	return updated.Clone(), nil
}

func (s *Service) commitPlan(ctx context.Context, plan Plan, confirm Confirm) (Result, error) {
	if plan.NeedsConfirmation && (confirm == nil || !confirm(plan)) {
		return Result{Plan: plan}, fmt.Errorf("%w: %s", member.ErrConfirmationRequired, plan.Description)
	}
	members, err := roster.Apply(s.state.Members, plan.Proposals...)
	if err != nil {
		return Result{Plan: plan}, err
	}
	if err := s.save(ctx, member.AppData{Members: members}); err != nil {
		return Result{Plan: plan}, err
	}
	s.logger.Info("roster change committed",
		slog.String("kind", string(plan.Kind)),
		slog.Int("count", plan.Count),
		slog.String("target_id", plan.TargetID),
	)
	return Result{Plan: plan, Data: s.state.Clone()}, nil
}

// save 整份寫入；失敗時記憶體狀態維持不變。呼叫端須持有鎖。
func (s *Service) save(ctx context.Context, next member.AppData) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, next.Members); err != nil {
		s.logger.Error("save document failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", member.ErrPersistence, err)
	}
	s.state = next
	return nil
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) error {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load document: %w", member.ErrPersistence, err)
	}
	s.state = member.Normalize(data, s.Today(), s.newID)
	s.loaded = true
	s.logger.Debug("document loaded", slog.Int("members", len(s.state.Members)))
	return nil
}

func (s *Service) observe(kind string, err *error) {
	if s.observer != nil {
		s.observer.ObserveMutation(kind, *err)
	}
}
