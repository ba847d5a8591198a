package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"shophub/internal/domain"
	"shophub/internal/payment"
	cartstore "shophub/internal/service/cart"
	"shophub/internal/service/order"
)

// Step is a checkout stage. The machine is strictly forward:
// shipping -> payment -> confirmation.
type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	// ErrPaymentInProgress rejects a second pay attempt while one is in flight.
	ErrPaymentInProgress = errors.New("payment already in progress")
	// ErrInvalidStep rejects an operation issued outside its step.
	ErrInvalidStep = errors.New("operation not allowed in current checkout step")
)

// Completion is handed to the completion callback once payment is confirmed.
type Completion struct {
	SessionID    string
	Address      domain.ShippingAddress
	Confirmation *payment.Confirmation
	Totals       order.Totals
}

// Service sequences shipping-info collection, payment and confirmation for
// checkout sessions, orchestrating the cart store, the order calculator and
// the injected payment provider.
type Service struct {
	carts      *cartstore.Store
	provider   payment.Provider
	logger     *log.Logger
	currency   string
	onComplete func(Completion)

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	step       Step
	address    domain.ShippingAddress
	errMsg     string
	processing bool
	totals     order.Totals // snapshot taken at confirmation
}

func New(carts *cartstore.Store, provider payment.Provider, currency string, logger *log.Logger, onComplete func(Completion)) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		carts:      carts,
		provider:   provider,
		logger:     logger,
		currency:   currency,
		onComplete: onComplete,
		sessions:   make(map[string]*session),
	}
}

// View is a read-only snapshot of a checkout session.
type View struct {
	SessionID  string                  `json:"sessionId"`
	Step       Step                    `json:"step"`
	Address    *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Processing bool                    `json:"processing"`
	Totals     order.Totals            `json:"totals"`
}

// Begin starts (or returns the already-started) checkout for a session.
func (s *Service) Begin(sessionID string) View {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{step: StepShipping}
		s.sessions[sessionID] = sess
		s.logger.Printf("checkout: started session=%s", sessionID)
	}
	view := s.viewLocked(sessionID, sess)
	s.mu.Unlock()
	return view
}

// Get returns the current checkout state; domain.ErrNotFound if checkout was
// never begun for the session.
func (s *Service) Get(sessionID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return View{}, domain.ErrNotFound
	}
	return s.viewLocked(sessionID, sess), nil
}

// Abandon discards the checkout session. The cart is left intact.
func (s *Service) Abandon(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// SubmitShipping validates the address and advances shipping -> payment.
func (s *Service) SubmitShipping(sessionID string, addr domain.ShippingAddress) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return View{}, domain.ErrNotFound
	}
	if sess.step != StepShipping {
		return View{}, ErrInvalidStep
	}
	if err := addr.Validate(); err != nil {
		return View{}, err
	}
	sess.address = addr
	sess.step = StepPayment
	s.logger.Printf("checkout: shipping submitted session=%s", sessionID)
	return s.viewLocked(sessionID, sess), nil
}

// Pay runs the two payment round trips: create an intent for the amount
// derived from the current cart, then confirm it. Provider failures are
// converted to the session error message and leave the session in the payment
// step with the cart intact; only guard violations are returned as errors.
func (s *Service) Pay(ctx context.Context, sessionID string) (View, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return View{}, domain.ErrNotFound
	}
	if sess.step != StepPayment {
		view := s.viewLocked(sessionID, sess)
		s.mu.Unlock()
		return view, ErrInvalidStep
	}
	if sess.processing {
		view := s.viewLocked(sessionID, sess)
		s.mu.Unlock()
		return view, ErrPaymentInProgress
	}
	sess.processing = true
	sess.errMsg = ""
	addr := sess.address
	s.mu.Unlock()

	// Totals come from the cart as it is now, not a snapshot taken at
	// shipping submission.
	lines := s.carts.Lines(sessionID)
	totals := order.Calculate(lines)

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		AmountMinor: totals.MinorUnits(),
		Currency:    s.currency,
		Metadata:    intentMetadata(addr, lines),
	})
	if err != nil {
		return s.paymentFailed(sessionID, sess, err), nil
	}

	conf, err := s.provider.ConfirmIntent(ctx, intent.ClientSecret, payment.BillingDetails{
		Name:       addr.FullName(),
		Line1:      addr.Address,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.ZipCode,
		Country:    addr.Country,
	})
	if err != nil {
		return s.paymentFailed(sessionID, sess, err), nil
	}

	s.mu.Lock()
	sess.step = StepConfirmation
	sess.processing = false
	sess.totals = totals
	view := s.viewLocked(sessionID, sess)
	s.mu.Unlock()

	s.carts.Clear(sessionID)
	s.logger.Printf("checkout: completed session=%s intent=%s amount=%d", sessionID, conf.IntentID, totals.MinorUnits())

	if s.onComplete != nil {
		s.onComplete(Completion{
			SessionID:    sessionID,
			Address:      addr,
			Confirmation: conf,
			Totals:       totals,
		})
	}
	return view, nil
}

func (s *Service) paymentFailed(sessionID string, sess *session, err error) View {
	s.mu.Lock()
	sess.errMsg = err.Error()
	sess.processing = false
	view := s.viewLocked(sessionID, sess)
	s.mu.Unlock()
	s.logger.Printf("checkout: payment failed session=%s error=%v", sessionID, err)
	return view
}

// viewLocked snapshots a session; totals reflect the live cart until
// confirmation freezes them. Callers hold s.mu.
func (s *Service) viewLocked(sessionID string, sess *session) View {
	view := View{
		SessionID:  sessionID,
		Step:       sess.step,
		Error:      sess.errMsg,
		Processing: sess.processing,
	}
	if sess.step == StepConfirmation {
		view.Totals = sess.totals
	} else {
		view.Totals = order.Calculate(s.carts.Lines(sessionID))
	}
	if sess.step != StepShipping {
		addr := sess.address
		view.Address = &addr
	}
	return view
}

func intentMetadata(addr domain.ShippingAddress, lines []domain.CartLine) map[string]string {
	meta := make(map[string]string, 2)
	if b, err := json.Marshal(addr); err == nil {
		meta["shipping_address"] = string(b)
	}
	if b, err := json.Marshal(lines); err == nil {
		meta["items"] = string(b)
	}
	return meta
}
