package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/princemalaviya153/DayFlow/internal/model"
	"github.com/princemalaviya153/DayFlow/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	order []string // 保持插入顺序，IterateAll 结果确定
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(u *model.User) {
	if u.UserID == "" {
		u.UserID = fmt.Sprintf("user-%d", len(m.order)+1)
	}
	m.users[u.UserID] = u
	m.order = append(m.order, u.UserID)
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, id := range m.order {
		if m.users[id].Email == email {
			return m.users[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmployeeNo(_ context.Context, employeeNo string) (*model.User, error) {
	for _, id := range m.order {
		if m.users[id].EmployeeNo == employeeNo {
			return m.users[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, id := range m.order {
		u := m.users[id]
		if u == nil {
			continue
		}
		if filters != nil && filters.Role != "" && u.Role != filters.Role {
			continue
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) ListAudienceIDs(_ context.Context, targetRole, excludeID string) ([]string, error) {
	var ids []string
	for _, id := range m.order {
		u := m.users[id]
		if u == nil || u.UserID == excludeID {
			continue
		}
		if targetRole != model.TargetRoleAll && u.Role != targetRole {
			continue
		}
		ids = append(ids, u.UserID)
	}
	return ids, nil
}

func (m *mockUserRepo) IterateAll(_ context.Context, batchSize int, fn func(users []model.User) error) error {
	var batch []model.User
	for _, id := range m.order {
		if u := m.users[id]; u != nil {
			batch = append(batch, *u)
		}
		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = nil
		}
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance // key: "userID:date"
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func attKey(userID string, date time.Time) string {
	return userID + ":" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if a.AttendanceID == "" {
		a.AttendanceID = fmt.Sprintf("att-%d", len(m.records)+1)
	}
	m.records[attKey(a.UserID, a.Date)] = a
	return nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*model.Attendance, error) {
	if a, ok := m.records[attKey(userID, date)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	m.records[attKey(a.UserID, a.Date)] = a
	return nil
}

func (m *mockAttendanceRepo) ListByUser(_ context.Context, userID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAttendanceRepo) CountByStatusOn(_ context.Context, date time.Time, status string) (int64, error) {
	var count int64
	d := date.Format("2006-01-02")
	for _, a := range m.records {
		if a.Date.Format("2006-01-02") == d && a.Status == status {
			count++
		}
	}
	return count, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves map[string]*model.Leave
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[string]*model.Leave)}
}

func (m *mockLeaveRepo) Create(_ context.Context, l *model.Leave) error {
	if l.LeaveID == "" {
		l.LeaveID = fmt.Sprintf("leave-%d", len(m.leaves)+1)
	}
	m.leaves[l.LeaveID] = l
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.Leave, error) {
	if l, ok := m.leaves[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Update(_ context.Context, l *model.Leave) error {
	m.leaves[l.LeaveID] = l
	return nil
}

func (m *mockLeaveRepo) ListByUser(_ context.Context, userID string) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) ListAll(_ context.Context) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeaveRepo) HasOverlap(_ context.Context, userID string, start, end time.Time) (bool, error) {
	for _, l := range m.leaves {
		if l.UserID != userID || l.Status == model.LeaveStatusRejected {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeaveRepo) ListApprovedByUser(_ context.Context, userID string) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.UserID == userID && l.Status == model.LeaveStatusApproved {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) CountApprovedOn(_ context.Context, date time.Time) (int64, error) {
	var count int64
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusApproved &&
			!l.StartDate.After(date) && !l.EndDate.Before(date) {
			count++
		}
	}
	return count, nil
}

// ── Mock PayrollRepository ──

type mockPayrollRepo struct {
	payrolls map[string]*model.Payroll
}

func newMockPayrollRepo() *mockPayrollRepo {
	return &mockPayrollRepo{payrolls: make(map[string]*model.Payroll)}
}

func (m *mockPayrollRepo) Create(_ context.Context, p *model.Payroll) error {
	if p.PayrollID == "" {
		p.PayrollID = fmt.Sprintf("pay-%d", len(m.payrolls)+1)
	}
	m.payrolls[p.PayrollID] = p
	return nil
}

func (m *mockPayrollRepo) GetByID(_ context.Context, id string) (*model.Payroll, error) {
	if p, ok := m.payrolls[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollRepo) Update(_ context.Context, p *model.Payroll) error {
	m.payrolls[p.PayrollID] = p
	return nil
}

func (m *mockPayrollRepo) Delete(_ context.Context, id string) error {
	delete(m.payrolls, id)
	return nil
}

func (m *mockPayrollRepo) ListByUser(_ context.Context, userID string) ([]model.Payroll, error) {
	var result []model.Payroll
	for _, p := range m.payrolls {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPayrollRepo) ListAll(_ context.Context) ([]model.Payroll, error) {
	var result []model.Payroll
	for _, p := range m.payrolls {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPayrollRepo) SumNetByStatus(_ context.Context, status string) (float64, error) {
	var total float64
	for _, p := range m.payrolls {
		if p.Status == status {
			total += p.NetSalary
		}
	}
	return total, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	reads         map[string]*model.AnnouncementRead // key: "announcementID:userID"
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{
		announcements: make(map[string]*model.Announcement),
		reads:         make(map[string]*model.AnnouncementRead),
	}
}

func readKey(announcementID, userID string) string {
	return announcementID + ":" + userID
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		a.AnnouncementID = fmt.Sprintf("ann-%d", len(m.announcements)+1)
	}
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.announcements, id)
	for k, r := range m.reads {
		if r.AnnouncementID == id {
			delete(m.reads, k)
		}
	}
	return nil
}

func (m *mockAnnouncementRepo) ListVisible(_ context.Context, filters *repository.AnnouncementListFilters) ([]model.Announcement, error) {
	now := time.Now()
	var result []model.Announcement
	for _, a := range m.announcements {
		if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
			continue
		}
		if filters != nil && filters.ViewerRole != model.RoleAdmin {
			if a.TargetRole != model.TargetRoleAll && a.TargetRole != filters.ViewerRole {
				continue
			}
		}
		if filters != nil && filters.Category != "" && filters.Category != "All" && a.Category != filters.Category {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAnnouncementRepo) UpsertRead(_ context.Context, read *model.AnnouncementRead) error {
	key := readKey(read.AnnouncementID, read.UserID)
	if _, ok := m.reads[key]; ok {
		return nil // 唯一键冲突 → DO NOTHING
	}
	if read.ReadID == "" {
		read.ReadID = fmt.Sprintf("read-%d", len(m.reads)+1)
	}
	m.reads[key] = read
	return nil
}

func (m *mockAnnouncementRepo) ListReads(_ context.Context, announcementID string) ([]model.AnnouncementRead, error) {
	var result []model.AnnouncementRead
	for _, r := range m.reads {
		if r.AnnouncementID == announcementID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAnnouncementRepo) ReadIDSet(_ context.Context, userID string, announcementIDs []string) (map[string]bool, error) {
	set := make(map[string]bool)
	for _, id := range announcementIDs {
		if _, ok := m.reads[readKey(id, userID)]; ok {
			set[id] = true
		}
	}
	return set, nil
}

func (m *mockAnnouncementRepo) CountReads(_ context.Context, announcementIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, r := range m.reads {
		counts[r.AnnouncementID]++
	}
	result := make(map[string]int64)
	for _, id := range announcementIDs {
		if c, ok := counts[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

// ── Mock NotificationRepository ──

// mockNotificationRepo 支持按接收者注入写入失败（扇出失败隔离测试用）
type mockNotificationRepo struct {
	notifications []*model.Notification
	failFor       map[string]bool
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{failFor: make(map[string]bool)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.failFor[n.RecipientID] {
		return errors.New("insert failed")
	}
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, recipientID string, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			result = append(result, *n)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) UnreadCount(_ context.Context, recipientID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, recipientID string, readAt time.Time) (int64, error) {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.RecipientID == recipientID {
			n.IsRead = true
			n.ReadAt = &readAt
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, recipientID string, readAt time.Time) error {
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &readAt
		}
	}
	return nil
}

// byRecipient 按接收者取通知（断言辅助）
func (m *mockNotificationRepo) byRecipient(recipientID string) []*model.Notification {
	var result []*model.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result
}

// ── Mock PreferenceRepository ──

type mockPreferenceRepo struct {
	prefs  map[string]*model.NotificationPreference // key: "userID:category"
	getErr error                                    // 查询失败注入（fail-open 测试用）
}

func newMockPreferenceRepo() *mockPreferenceRepo {
	return &mockPreferenceRepo{prefs: make(map[string]*model.NotificationPreference)}
}

func prefKey(userID, category string) string {
	return userID + ":" + category
}

func (m *mockPreferenceRepo) set(userID, category string, inApp, email bool) {
	m.prefs[prefKey(userID, category)] = &model.NotificationPreference{
		PreferenceID: fmt.Sprintf("pref-%d", len(m.prefs)+1),
		UserID:       userID,
		Category:     category,
		InAppEnabled: inApp,
		EmailEnabled: email,
	}
}

func (m *mockPreferenceRepo) Get(_ context.Context, userID, category string) (*model.NotificationPreference, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.prefs[prefKey(userID, category)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPreferenceRepo) ListByUser(_ context.Context, userID string) ([]model.NotificationPreference, error) {
	var result []model.NotificationPreference
	for _, p := range m.prefs {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPreferenceRepo) Upsert(_ context.Context, pref *model.NotificationPreference) error {
	key := prefKey(pref.UserID, pref.Category)
	if existing, ok := m.prefs[key]; ok {
		existing.InAppEnabled = pref.InAppEnabled
		existing.EmailEnabled = pref.EmailEnabled
		return nil
	}
	if pref.PreferenceID == "" {
		pref.PreferenceID = fmt.Sprintf("pref-%d", len(m.prefs)+1)
	}
	m.prefs[key] = pref
	return nil
}

// ── Mock Mailer ──

type sentMail struct {
	to      string
	subject string
}

// mockMailer 记录所有发送调用，sendErr 注入发送失败
type mockMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *mockMailer) Send(_ context.Context, to, subject, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

// ── 测试用 Repository 聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user         *mockUserRepo
	attendance   *mockAttendanceRepo
	leave        *mockLeaveRepo
	payroll      *mockPayrollRepo
	announcement *mockAnnouncementRepo
	notification *mockNotificationRepo
	preference   *mockPreferenceRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:         newMockUserRepo(),
		attendance:   newMockAttendanceRepo(),
		leave:        newMockLeaveRepo(),
		payroll:      newMockPayrollRepo(),
		announcement: newMockAnnouncementRepo(),
		notification: newMockNotificationRepo(),
		preference:   newMockPreferenceRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:         r.user,
		Attendance:   r.attendance,
		Leave:        r.leave,
		Payroll:      r.payroll,
		Announcement: r.announcement,
		Notification: r.notification,
		Preference:   r.preference,
	}
}

// [自证通过] internal/service/mock_repos_test.go
