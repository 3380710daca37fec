package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/zaylabs/dryclean-api/internal/domain/calculator"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	infraRepo "github.com/zaylabs/dryclean-api/internal/infrastructure/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"github.com/zaylabs/dryclean-api/pkg/utils"
	"gorm.io/datatypes"
)

// maxReceiptAttempts bounds how often a booking is retried after a receipt number collision
const maxReceiptAttempts = 3

// BookingService handles the counter: quoting, booking and ticket status
type BookingService struct {
	bookingRepo  repository.BookingRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	configRepo   repository.ConfigurationRepository
	problemRepo  repository.ProblemRepository
	receiptRepo  repository.ReceiptSequenceRepository
	transactor   repository.Transactor
	clock        func() time.Time
}

// NewBookingService creates a new booking service. clock supplies the
// current moment in the shop's timezone.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	configRepo repository.ConfigurationRepository,
	problemRepo repository.ProblemRepository,
	receiptRepo repository.ReceiptSequenceRepository,
	transactor repository.Transactor,
	clock func() time.Time,
) *BookingService {
	if clock == nil {
		clock = time.Now
	}
	return &BookingService{
		bookingRepo:  bookingRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		configRepo:   configRepo,
		problemRepo:  problemRepo,
		receiptRepo:  receiptRepo,
		transactor:   transactor,
		clock:        clock,
	}
}

// BookingLineInput is one requested item
type BookingLineInput struct {
	ItemID uuid.UUID
	Units  int
}

// QuoteInput is the priced part of a booking
type QuoteInput struct {
	Items        []BookingLineInput
	DeliveryType enum.DeliveryType
	HangerUnits  int
}

// QuoteOutput is a price breakdown with the dates the booking would get now
type QuoteOutput struct {
	Quote                  *calculator.Quote
	BookingDate            time.Time
	DeliveryDate           *time.Time
	SameDayUrgentAvailable bool
}

// POSContext is everything the counter screen needs before taking a booking
type POSContext struct {
	Items         []entity.Item
	Configuration *entity.Configuration
	Problems      []entity.Problem
	Schedule      calculator.Schedule
}

// GetPOSContext returns active items, pricing, issue labels and today's schedule.
// A missing configuration is reported as nil rather than an error so the
// screen can tell the operator to set it up.
func (s *BookingService) GetPOSContext(ctx context.Context) (*POSContext, error) {
	items, err := s.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	problems, err := s.problemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &POSContext{
		Items:         items,
		Configuration: cfg,
		Problems:      problems,
		Schedule:      calculator.Plan(s.clock(), cfg),
	}, nil
}

// Quote prices a request without saving anything
func (s *BookingService) Quote(ctx context.Context, input *QuoteInput) (*QuoteOutput, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, input, cfg, s.clock())
}

func (s *BookingService) quote(ctx context.Context, input *QuoteInput, cfg *entity.Configuration, current time.Time) (*QuoteOutput, error) {
	items, err := s.loadItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	req := calculator.QuoteRequest{
		Lines:        make([]calculator.Line, len(input.Items)),
		DeliveryType: input.DeliveryType,
		HangerUnits:  input.HangerUnits,
	}
	for i, line := range input.Items {
		req.Lines[i] = calculator.Line{ItemID: line.ItemID, Units: line.Units}
	}

	q, err := calculator.BuildQuote(req, items, cfg)
	if err != nil {
		return nil, err
	}

	bookingDate := calculator.BookingDate(current)
	return &QuoteOutput{
		Quote:                  q,
		BookingDate:            bookingDate,
		DeliveryDate:           calculator.DeliveryDate(current, bookingDate, input.DeliveryType, cfg),
		SameDayUrgentAvailable: calculator.SameDayUrgentAvailable(current),
	}, nil
}

func (s *BookingService) loadItems(ctx context.Context, lines []BookingLineInput) (map[uuid.UUID]*entity.Item, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			ids = append(ids, line.ItemID)
		}
	}

	found, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make(map[uuid.UUID]*entity.Item, len(found))
	for i := range found {
		items[found[i].ID] = &found[i]
	}
	return items, nil
}

// CreateBookingInput represents the create booking input
type CreateBookingInput struct {
	UserID        uuid.UUID
	CustomerPhone string
	Items         []BookingLineInput
	DeliveryType  enum.DeliveryType
	HangerUnits   int
	Notes         *string
	Issues        []string
}

// CreateBooking prices and stores a booking for the caller's branch. The
// customer upsert, receipt allocation, booking insert and customer counter
// commit together or not at all.
func (s *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*entity.Booking, error) {
	branchCode, ok := infraRepo.GetBranchCode(ctx)
	if !ok {
		return nil, apperror.ErrBranchRequired
	}

	phone := utils.NormalizePhone(input.CustomerPhone)
	if phone == "" {
		return nil, apperror.NewFieldError("customer_phone", "The customer phone field is required.")
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.ErrConfigurationMissing
	}

	current := s.clock()
	out, err := s.quote(ctx, &QuoteInput{
		Items:        input.Items,
		DeliveryType: input.DeliveryType,
		HangerUnits:  input.HangerUnits,
	}, cfg, current)
	if err != nil {
		return nil, err
	}
	if out.DeliveryDate == nil {
		return nil, apperror.NewFieldError("delivery_type", "Same day urgent delivery is not available between 10:30 and 18:30.")
	}

	var booking *entity.Booking
	for attempt := 1; attempt <= maxReceiptAttempts; attempt++ {
		booking, err = s.createInTransaction(ctx, branchCode, phone, input, out)
		if !errors.Is(err, repository.ErrDuplicateKey) {
			break
		}
		log.Printf("Booking for branch %s collided on a unique key (attempt %d/%d), retrying", branchCode, attempt, maxReceiptAttempts)
	}
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, apperror.NewConflictError("Could not allocate a receipt number, please try again")
	}
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	log.Printf("Booking %s created for %s (%s, total %s)", booking.ReceiptNumber, phone, booking.DeliveryType, booking.TotalAmount.StringFixed(2))
	return booking, nil
}

func (s *BookingService) createInTransaction(ctx context.Context, branchCode, phone string, input *CreateBookingInput, out *QuoteOutput) (*entity.Booking, error) {
	var booking *entity.Booking

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.FirstOrCreateByPhone(ctx, phone)
		if err != nil {
			return err
		}

		seq, err := s.receiptRepo.Next(ctx, branchCode, func(ctx context.Context) (int, error) {
			existing, err := s.bookingRepo.ReceiptNumbers(ctx, branchCode)
			if err != nil {
				return 0, err
			}
			return calculator.HighestReceiptSequence(branchCode, existing), nil
		})
		if err != nil {
			return err
		}

		booking = newBooking(branchCode, customer, input, out)
		booking.ReceiptNumber = calculator.FormatReceiptNumber(branchCode, seq)

		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			return err
		}
		if err := s.customerRepo.IncrementBookings(ctx, customer.ID); err != nil {
			return err
		}
		customer.NumberOfBookings++
		booking.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func newBooking(branchCode string, customer *entity.Customer, input *CreateBookingInput, out *QuoteOutput) *entity.Booking {
	q := out.Quote
	booking := &entity.Booking{
		BranchCode:         branchCode,
		CustomerID:         customer.ID,
		UserID:             input.UserID,
		CustomerPhone:      customer.Phone,
		AmountTotal:        q.AmountTotal,
		SalesTaxPercentage: q.SalesTaxPercentage,
		SalesTaxAmount:     q.SalesTaxAmount,
		NumberOfUnits:      q.NumberOfUnits,
		HangerUnits:        q.HangerUnits,
		HangerAmount:       q.HangerAmount,
		TotalAmount:        q.TotalAmount,
		DeliveryType:       q.DeliveryType,
		Status:             enum.BookingStatusBooked,
		BookingDate:        out.BookingDate,
		DeliveryDate:       out.DeliveryDate,
		Notes:              trimmedOrNil(input.Notes),
		Issues:             cleanIssues(input.Issues),
		Items:              make([]entity.BookingItem, 0, len(q.Lines)),
	}
	for _, line := range q.Lines {
		booking.Items = append(booking.Items, entity.BookingItem{
			ItemID:    line.Item.ID,
			ItemName:  line.Item.Name,
			Units:     line.Units,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return booking
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func cleanIssues(issues []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(issues))
	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		issue = strings.TrimSpace(issue)
		if issue == "" || seen[issue] {
			continue
		}
		seen[issue] = true
		out = append(out, issue)
	}
	return out
}

// GetBooking returns a booking with its items
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	return booking, nil
}

// ListBookings returns a page of bookings visible to the caller. Date
// filters are whole calendar days in the shop zone.
func (s *BookingService) ListBookings(ctx context.Context, params *repository.BookingFilterParams) (*pagination.PaginatedResult[entity.Booking], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	loc := s.clock().Location()
	if params.StartDate != nil {
		from := dayIn(*params.StartDate, loc)
		params.StartDate = &from
	}
	if params.EndDate != nil {
		to := now.New(dayIn(*params.EndDate, loc)).EndOfDay()
		params.EndDate = &to
	}

	bookings, total, err := s.bookingRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(bookings, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateStatus moves a booking along booked, processing, ready, delivered, or cancels it
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) (*entity.Booking, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "The selected status is invalid.")
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Booking cannot move from %s to %s", booking.Status, status))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}
