package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	infraRepo "github.com/zaylabs/dryclean-api/internal/infrastructure/repository"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
)

// In-memory repositories shared by the service tests.

type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeItemRepo struct {
	items map[uuid.UUID]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[uuid.UUID]*entity.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	for _, it := range r.items {
		if it.Code == item.Code {
			return repository.ErrDuplicateKey
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var out []entity.Item
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Code == code {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	var out []entity.Item
	for _, it := range r.items {
		if params.Status != nil && it.Status != *params.Status {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) ListActive(ctx context.Context) ([]entity.Item, error) {
	status := enum.ItemStatusActive
	items, _, err := r.List(ctx, &repository.ItemFilterParams{Status: &status})
	return items, err
}

type fakeConfigRepo struct {
	cfg *entity.Configuration
}

func (r *fakeConfigRepo) Get(context.Context) (*entity.Configuration, error) {
	return r.cfg, nil
}

func (r *fakeConfigRepo) Save(_ context.Context, cfg *entity.Configuration) error {
	r.cfg = cfg
	return nil
}

func (r *fakeConfigRepo) Delete(context.Context) error {
	r.cfg = nil
	return nil
}

type fakeProblemRepo struct {
	problems []entity.Problem
}

func (r *fakeProblemRepo) Create(_ context.Context, p *entity.Problem) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.problems = append(r.problems, *p)
	return nil
}

func (r *fakeProblemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Problem, error) {
	for i := range r.problems {
		if r.problems[i].ID == id {
			p := r.problems[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProblemRepo) Update(_ context.Context, p *entity.Problem) error {
	for i := range r.problems {
		if r.problems[i].ID == p.ID {
			r.problems[i] = *p
		}
	}
	return nil
}

func (r *fakeProblemRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.problems {
		if r.problems[i].ID == id {
			r.problems = append(r.problems[:i], r.problems[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProblemRepo) List(context.Context) ([]entity.Problem, error) {
	return r.problems, nil
}

type fakeSettingRepo struct {
	setting *entity.AppSetting
	creates int
}

func (r *fakeSettingRepo) FirstOrCreate(_ context.Context, defaults *entity.AppSetting) (*entity.AppSetting, error) {
	if r.setting == nil {
		created := *defaults
		created.ID = uuid.New()
		r.setting = &created
		r.creates++
	}
	cp := *r.setting
	return &cp, nil
}

func (r *fakeSettingRepo) Save(_ context.Context, setting *entity.AppSetting) error {
	cp := *setting
	r.setting = &cp
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[uuid.UUID]*entity.Location{}}
}

func (r *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, l *entity.Location) error {
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.locations, id)
	return nil
}

func (r *fakeLocationRepo) List(context.Context) ([]entity.Location, error) {
	out := make([]entity.Location, 0, len(r.locations))
	for _, l := range r.locations {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeCustomerRepo hands out copies so callers cannot mutate stored rows
// behind the repository's back, the way rows loaded through gorm behave.
type fakeCustomerRepo struct {
	byPhone map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byPhone: map[string]*entity.Customer{}}
}

func (r *fakeCustomerRepo) stored(id uuid.UUID) *entity.Customer {
	for _, c := range r.byPhone {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func copyCustomer(c *entity.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if _, ok := r.byPhone[c.Phone]; ok {
		return repository.ErrDuplicateKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CustomerType == "" {
		c.CustomerType = entity.DefaultCustomerType
	}
	r.byPhone[c.Phone] = copyCustomer(c)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return copyCustomer(r.stored(id)), nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	return copyCustomer(r.byPhone[phone]), nil
}

func (r *fakeCustomerRepo) FirstOrCreateByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	if c, ok := r.byPhone[phone]; ok {
		return copyCustomer(c), nil
	}
	c := &entity.Customer{Phone: phone}
	return c, r.Create(ctx, c)
}

func (r *fakeCustomerRepo) IncrementBookings(_ context.Context, id uuid.UUID) error {
	if c := r.stored(id); c != nil {
		c.NumberOfBookings++
	}
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	for phone, existing := range r.byPhone {
		if existing.ID == c.ID {
			delete(r.byPhone, phone)
		}
	}
	r.byPhone[c.Phone] = copyCustomer(c)
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	for phone, c := range r.byPhone {
		if c.ID == id {
			delete(r.byPhone, phone)
		}
	}
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.byPhone {
		if strings.Contains(c.Phone, search) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
	// failCreates makes the next n Create calls fail with a duplicate key
	failCreates int
	creates     int
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.failCreates > 0 {
		r.failCreates--
		return repository.ErrDuplicateKey
	}
	for _, existing := range r.bookings {
		if existing.ReceiptNumber == b.ReceiptNumber {
			return repository.ErrDuplicateKey
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) visible(ctx context.Context, b *entity.Booking) bool {
	if infraRepo.SkipsBranchScope(ctx) {
		return true
	}
	code, ok := infraRepo.GetBranchCode(ctx)
	return ok && b.BranchCode == code
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id && r.visible(ctx, b) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.ReceiptNumber == receiptNumber && r.visible(ctx, b) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, params *repository.BookingFilterParams) ([]entity.Booking, int64, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if !r.visible(ctx, b) {
			continue
		}
		if params.Status != nil && b.Status != *params.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	b, _ := r.GetByID(ctx, id)
	if b != nil {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) ReceiptNumbers(_ context.Context, branchCode string) ([]string, error) {
	var out []string
	for _, b := range r.bookings {
		if strings.HasPrefix(b.ReceiptNumber, branchCode+"-") {
			out = append(out, b.ReceiptNumber)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Summarize(ctx context.Context, from, to time.Time) ([]repository.BookingSummaryRow, error) {
	rows := map[enum.DeliveryType]*repository.BookingSummaryRow{}
	for _, b := range r.bookings {
		if !r.visible(ctx, b) || b.Status == enum.BookingStatusCancelled {
			continue
		}
		if b.BookingDate.Before(from) || b.BookingDate.After(to) {
			continue
		}
		row, ok := rows[b.DeliveryType]
		if !ok {
			row = &repository.BookingSummaryRow{DeliveryType: b.DeliveryType}
			rows[b.DeliveryType] = row
		}
		row.Bookings++
		row.Units += int64(b.NumberOfUnits)
		row.AmountTotal = row.AmountTotal.Add(b.AmountTotal)
		row.SalesTaxAmount = row.SalesTaxAmount.Add(b.SalesTaxAmount)
		row.HangerAmount = row.HangerAmount.Add(b.HangerAmount)
		row.TotalAmount = row.TotalAmount.Add(b.TotalAmount)
	}
	var out []repository.BookingSummaryRow
	for _, dt := range enum.DeliveryTypes {
		if row, ok := rows[dt]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeReceiptRepo struct {
	counters map[string]int
	seeded   int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{counters: map[string]int{}}
}

func (r *fakeReceiptRepo) Next(ctx context.Context, branchCode string, highest func(ctx context.Context) (int, error)) (int, error) {
	if _, ok := r.counters[branchCode]; !ok {
		h, err := highest(ctx)
		if err != nil {
			return 0, err
		}
		r.seeded++
		r.counters[branchCode] = h
	}
	r.counters[branchCode]++
	return r.counters[branchCode], nil
}

type fakeBranchRepo struct {
	branches map[uuid.UUID]*entity.Branch
}

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{branches: map[uuid.UUID]*entity.Branch{}}
	for _, b := range branches {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		r.branches[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	for _, existing := range r.branches {
		if existing.BranchCode == b.BranchCode {
			return repository.ErrDuplicateKey
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.branches[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Branch, error) {
	return r.branches[id], nil
}

func (r *fakeBranchRepo) GetByCode(_ context.Context, code string) (*entity.Branch, error) {
	for _, b := range r.branches {
		if b.BranchCode == code {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBranchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.branches, id)
	return nil
}

func (r *fakeBranchRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Branch, int64, error) {
	var out []entity.Branch
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}
