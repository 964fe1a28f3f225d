package orders

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/polyglot/pkg/logger"
)

// PaymentGateway charges an order.
type PaymentGateway interface {
	Charge(ctx context.Context, o Order) error
}

// SimulatedGateway approves every charge up to Limit and declines the rest.
// A zero Limit approves everything.
type SimulatedGateway struct {
	Limit float64
}

func (g SimulatedGateway) Charge(_ context.Context, o Order) error {
	if g.Limit > 0 && o.Amount() > g.Limit {
		return ErrPaymentDeclined
	}
	return nil
}

// Service implements the order desk operations.
type Service struct {
	repo    Repository
	gateway PaymentGateway
	log     *slog.Logger
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithGateway replaces the payment gateway.
func WithGateway(g PaymentGateway) ServiceOption {
	return func(s *Service) {
		if g != nil {
			s.gateway = g
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service over repo.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		gateway: SimulatedGateway{},
		log:     logger.NewNope(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in and stores a NEW order.
func (s *Service) Create(ctx context.Context, in Input) (Order, error) {
	in = in.Sanitize()
	if err := in.Validate(); err != nil {
		return Order{}, err
	}

	now := s.now().UTC()
	o, err := s.repo.Create(ctx, Order{
		Customer:  in.Customer,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Order{}, err
	}

	s.log.InfoContext(ctx, "order created", slog.Int64("order_id", o.ID))
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// Update replaces the editable fields. The status may only stay as it is or
// move to CANCELLED; payment states are reached through Pay. A paid order can
// only be cancelled and a cancelled order is final.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Order, error) {
	in = in.Sanitize()
	if err := in.Validate(); err != nil {
		return Order{}, err
	}

	return s.repo.Update(ctx, id, func(o *Order) error {
		if err := checkTransition(o.Status, in.Status); err != nil {
			return err
		}
		o.Customer = in.Customer
		o.Quantity = in.Quantity
		o.UnitPrice = in.UnitPrice
		o.Notes = in.Notes
		if in.Status != "" {
			o.Status = in.Status
		}
		o.UpdatedAt = s.now().UTC()
		return nil
	})
}

// checkTransition reports whether an update may move an order from
// current to next. An empty next keeps the current status.
func checkTransition(current, next Status) error {
	switch {
	case current == StatusCancelled:
		return ErrCancelled
	case next != "" && next != current && next != StatusCancelled:
		return &ValidationError{Field: "status", Key: "validation.status_invalid"}
	case current == StatusPaid && next != StatusCancelled:
		return ErrAlreadyPaid
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "order deleted", slog.Int64("order_id", id))
	return nil
}

// Pay charges the order. A declined charge is recorded as PAYMENT_FAILED and
// returned as ErrPaymentDeclined; the order can be paid again later.
func (s *Service) Pay(ctx context.Context, id int64) (Order, error) {
	var declined error
	o, err := s.repo.Update(ctx, id, func(o *Order) error {
		switch o.Status {
		case StatusPaid:
			return ErrAlreadyPaid
		case StatusCancelled:
			return ErrCancelled
		}

		o.UpdatedAt = s.now().UTC()
		if err := s.gateway.Charge(ctx, *o); err != nil {
			if !errors.Is(err, ErrPaymentDeclined) {
				return err
			}
			declined = err
			o.Status = StatusPaymentFailed
			return nil
		}
		o.Status = StatusPaid
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	if declined != nil {
		s.log.WarnContext(ctx, "payment declined", slog.Int64("order_id", id), slog.Float64("amount", o.Amount()))
		return o, declined
	}
	s.log.InfoContext(ctx, "order paid", slog.Int64("order_id", id))
	return o, nil
}

// Summary counts orders and sums the revenue of paid ones.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Count: len(list)}
	for _, o := range list {
		if o.Status == StatusPaid {
			sum.Paid++
			sum.Revenue += o.Amount()
		}
	}
	return sum, nil
}
