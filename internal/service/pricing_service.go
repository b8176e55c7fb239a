package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/config"
	"github.com/wekeza/pricing-engine/internal/domain"
	"github.com/wekeza/pricing-engine/internal/pricing"
	"github.com/wekeza/pricing-engine/internal/repository"
	customError "github.com/wekeza/pricing-engine/pkg/errors"
)

const catalogCacheKey = "catalog:snapshot"

// catalogSnapshot is the Redis-cached form of the product catalog.
type catalogSnapshot struct {
	Products []*domain.LoanProduct `json:"products"`
	Types    []*domain.ProductType `json:"types"`
}

// PricingService composes the catalog, customer history and the
// pricing engine into the quote and booking operations. The engine
// itself stays pure: all I/O happens here, before it is invoked.
type PricingService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	loanRepo     repository.LoanRepository
	redis        *redis.Client
	config       *config.Config
}

func NewPricingService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *PricingService {
	return &PricingService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		redis:        redisClient,
		config:       cfg,
	}
}

// Quote runs one full pricing pass for a customer. Every call
// re-derives the result from scratch; there is no partial
// recomputation, so the caller may invoke it on every input change.
// A nil Result in the response means no amount was entered.
func (s *PricingService) Quote(ctx context.Context, request *domain.QuoteRequest) (*domain.QuoteResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, request.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(request.CustomerID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	history, err := s.customerRepo.GetLoanHistory(ctx, request.CustomerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	principal := decimal.Zero
	if request.Principal != nil {
		principal = *request.Principal
	}

	engine := pricing.NewEngine(catalog, s.config.GetMinBookableAmount())
	result, schedule := engine.Quote(domain.PricingRequest{
		Principal:      principal,
		ApprovedLimit:  customer.ApprovedLimit,
		PriorLoans:     history,
		SelectedTypeID: request.SelectedTypeID,
		DurationWeeks:  request.DurationWeeks,
	}, time.Now().Truncate(24*time.Hour))

	return &domain.QuoteResponse{Result: result, Schedule: schedule}, nil
}

// BookLoan re-runs the quote for the request and, when pricing is
// clean, persists the loan and its schedule. Any pricing error blocks
// the booking; the rejected result is returned alongside the error so
// the caller can name the violated bounds.
func (s *PricingService) BookLoan(ctx context.Context, request *domain.BookLoanRequest) (*domain.BookLoanResponse, error) {
	if request.Principal == nil {
		return nil, customError.WrapEmptyAmount(request.LoanID)
	}

	existingLoan, err := s.loanRepo.GetByLoanID(ctx, request.LoanID)
	if err == nil && existingLoan != nil {
		return nil, customError.WrapLoanAlreadyExists(request.LoanID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	quote, err := s.Quote(ctx, &domain.QuoteRequest{
		CustomerID:     request.CustomerID,
		Principal:      request.Principal,
		SelectedTypeID: request.SelectedTypeID,
		DurationWeeks:  request.DurationWeeks,
	})
	if err != nil {
		return nil, err
	}

	if quote.Result == nil {
		return nil, customError.WrapEmptyAmount(request.LoanID)
	}
	if quote.Result.HasErrors() {
		return &domain.BookLoanResponse{Result: quote.Result}, customError.WrapQuoteRejected(request.LoanID)
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:                uuid.New(),
		LoanID:            request.LoanID,
		CustomerID:        request.CustomerID,
		ProductID:         quote.Result.ProductID,
		TypeID:            quote.Result.TypeID,
		Principal:         *request.Principal,
		InterestRate:      quote.Result.InterestRate,
		TotalInterest:     quote.Result.TotalInterest,
		ProcessingFee:     quote.Result.ProcessingFee,
		RegistrationFee:   quote.Result.RegistrationFee,
		TotalPayable:      quote.Result.TotalPayable,
		WeeklyInstallment: quote.Result.WeeklyInstallment,
		DurationWeeks:     quote.Result.DurationWeeks,
		OfficerID:         request.OfficerID,
		BranchID:          request.BranchID,
		Status:            domain.LoanStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	schedules := make([]*domain.LoanSchedule, 0, len(quote.Schedule))
	for _, entry := range quote.Schedule {
		schedules = append(schedules, &domain.LoanSchedule{
			ID:                 uuid.New(),
			LoanID:             request.LoanID,
			WeekNumber:         entry.WeekNumber,
			DueAmount:          entry.TotalDue,
			InterestPortion:    entry.InterestPortion,
			ProcessingFeeDue:   entry.ProcessingFeeDue,
			RegistrationFeeDue: entry.RegistrationFeeDue,
			DueDate:            entry.DueDate,
			Status:             domain.ScheduleStatusPending,
			CreatedAt:          now,
		})
	}

	if err = s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err = s.loanRepo.CreateSchedule(ctx, schedules); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// The booked loan joins the history so the customer prices as a
	// repeat borrower from now on.
	record := &domain.CustomerLoanRecord{
		CustomerID: request.CustomerID,
		Status:     domain.CustomerLoanStatusPendingDisbursement,
		CreatedAt:  now,
	}
	if err = s.customerRepo.AppendLoanRecord(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.BookLoanResponse{
		Loan:     loan,
		Result:   quote.Result,
		Schedule: schedules,
	}, nil
}

// GetSchedule returns the persisted schedule for a booked loan.
func (s *PricingService) GetSchedule(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error) {
	if _, err := s.loanRepo.GetByLoanID(ctx, loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	schedules, err := s.loanRepo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return schedules, nil
}

// MarkOverdueSchedules flips pending installments past their due date
// to overdue. Invoked by the scheduler.
func (s *PricingService) MarkOverdueSchedules(ctx context.Context) (int64, error) {
	updated, err := s.loanRepo.MarkSchedulesOverdue(ctx, time.Now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	if updated > 0 {
		log.Info().Int64("updated", updated).Msg("marked overdue schedule entries")
	}

	return updated, nil
}

// RefreshCatalogCache reloads the catalog from the database into
// Redis, bypassing the cache-aside read path. Invoked by the scheduler.
func (s *PricingService) RefreshCatalogCache(ctx context.Context) error {
	snapshot, err := s.loadCatalogFromDB(ctx)
	if err != nil {
		return err
	}

	return s.cacheCatalog(ctx, snapshot)
}

// loadCatalog reads the catalog snapshot, cache-aside: Redis first,
// database on miss. Cache failures degrade to a database read.
func (s *PricingService) loadCatalog(ctx context.Context) (*pricing.Catalog, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var snapshot catalogSnapshot
			if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
				return pricing.NewCatalog(snapshot.Products, snapshot.Types), nil
			}
			log.Warn().Msg("discarding unreadable catalog cache entry")
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("catalog cache read failed, falling back to database")
		}
	}

	snapshot, err := s.loadCatalogFromDB(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheCatalog(ctx, snapshot); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}

	return pricing.NewCatalog(snapshot.Products, snapshot.Types), nil
}

func (s *PricingService) loadCatalogFromDB(ctx context.Context) (*catalogSnapshot, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	types, err := s.productRepo.ListProductTypes(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &catalogSnapshot{Products: products, Types: types}, nil
}

func (s *PricingService) cacheCatalog(ctx context.Context, snapshot *catalogSnapshot) error {
	if s.redis == nil {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	if err := s.redis.Set(ctx, catalogCacheKey, payload, s.config.GetCatalogCacheTTL()).Err(); err != nil {
		return customError.WrapCacheError(err)
	}

	return nil
}
