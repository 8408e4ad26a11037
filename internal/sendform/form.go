// Package sendform holds the send-form state machine: validation and
// normalization of user input, fee-aware max calculation, assembly of the
// final send request and its one-shot submission to the broadcaster.
package sendform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/xecwallet/sendd/internal/address"
	"github.com/xecwallet/sendd/internal/amount"
	"github.com/xecwallet/sendd/internal/batch"
	"github.com/xecwallet/sendd/internal/broadcast"
	"github.com/xecwallet/sendd/internal/chronik"
	"github.com/xecwallet/sendd/internal/fee"
	"github.com/xecwallet/sendd/internal/metrics"
	"github.com/xecwallet/sendd/internal/opreturn"
	"github.com/xecwallet/sendd/internal/xec"
)

// ErrSendInProgress rejects a submission attempted while one is already in
// flight. At most one send per form instance may be pending.
var ErrSendInProgress = errors.New("a send is already in progress")

// RateSource exposes the nullable fiat exchange rate.
type RateSource interface {
	Rate() *decimal.Decimal
}

// OutputSource exposes the wallet's spendable outputs and balance.
type OutputSource interface {
	Utxos(ctx context.Context, address string) ([]chronik.Utxo, error)
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
}

// Deps are the external collaborators the form reads from and calls into.
type Deps struct {
	Rates         RateSource
	Outputs       OutputSource
	Broadcaster   broadcast.Broadcaster
	FeeRate       decimal.Decimal
	WalletAddress string
	Logger        *logrus.Logger
}

// Event is one discrete input change applied to the form.
type Event interface {
	isEvent()
}

type (
	// SetMode toggles between single- and multi-recipient mode. Entering
	// multi mode forces message encryption off.
	SetMode struct{ Multi bool }
	// SetEncrypted toggles message encryption. Enabling it forces
	// single-recipient mode on.
	SetEncrypted struct{ Encrypted bool }
	// SetAddress replaces the single-recipient destination input.
	SetAddress struct{ Value string }
	// SetBatch replaces the multi-recipient line-delimited input.
	SetBatch struct{ Value string }
	// SetAmount replaces the amount input, denominated in the selected
	// currency.
	SetAmount struct{ Value string }
	// SetCurrency switches the amount denomination and clears the amount.
	SetCurrency struct{ Code string }
	// SetMessage replaces the optional attached message.
	SetMessage struct{ Value string }
	// SetAirdrop marks the flow as originating from an airdrop
	// distribution; TokenID is carried through for attribution.
	SetAirdrop struct{ TokenID string }
	// UseMax recalculates the fee-aware maximum and puts it in the amount
	// field. The only suspending event.
	UseMax struct{}
)

func (SetMode) isEvent()      {}
func (SetEncrypted) isEvent() {}
func (SetAddress) isEvent()   {}
func (SetBatch) isEvent()     {}
func (SetAmount) isEvent()    {}
func (SetCurrency) isEvent()  {}
func (SetMessage) isEvent()   {}
func (SetAirdrop) isEvent()   {}
func (UseMax) isEvent()       {}

// Form is the send-form state. All fields are guarded by mu; cross-field
// invariants are enforced in Apply, the single reducer.
type Form struct {
	deps Deps
	calc *fee.Calculator

	mu             sync.Mutex
	mode           Mode
	address        string // raw input, may carry a query suffix
	queryString    string
	batchText      string
	amount         string
	currency       string
	message        string
	airdrop        bool
	airdropTokenID string
	balance        decimal.Decimal

	addressErr string
	amountErr  string

	sending bool
}

func New(deps Deps) *Form {
	return &Form{
		deps:     deps,
		calc:     fee.NewCalculator(deps.Outputs, deps.FeeRate),
		mode:     Single{},
		currency: xec.Ticker,
	}
}

// RefreshBalance pulls the wallet's current spendable balance from the
// output source. Amount validation compares against this snapshot.
func (f *Form) RefreshBalance(ctx context.Context) error {
	balance, err := f.deps.Outputs.Balance(ctx, f.deps.WalletAddress)
	if err != nil {
		return fmt.Errorf("failed to refresh balance: %w", err)
	}

	f.mu.Lock()
	f.balance = balance
	f.mu.Unlock()
	return nil
}

// Apply runs one input-change event through the reducer, recomputing the
// affected validation state. Only UseMax suspends; everything else is
// synchronous and returns nil.
func (f *Form) Apply(ctx context.Context, ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev := ev.(type) {
	case SetMode:
		if ev.Multi {
			f.mode = Multi{}
		} else {
			f.mode = Single{}
		}
		f.message = opreturn.Prepare(f.message, f.messageModeLocked())
		f.revalidateAddressLocked()

	case SetEncrypted:
		if ev.Encrypted {
			f.mode = Single{Encrypted: true}
			f.revalidateAddressLocked()
		} else if _, ok := f.mode.(Single); ok {
			f.mode = Single{}
		}
		f.message = opreturn.Prepare(f.message, f.messageModeLocked())

	case SetAddress:
		f.address = ev.Value
		parsed := address.ParseWithParams(ev.Value)
		f.queryString = parsed.QueryString
		f.addressErr = address.CheckSendAddress(parsed.Address)
		if parsed.Amount != nil {
			// An embedded amount parameter is denominated in native
			// units, so the currency is forced to the native ticker.
			f.currency = xec.Ticker
			f.amount = parsed.Amount.String()
			f.amountErr = f.validateAmountLocked(f.amount)
		}

	case SetBatch:
		f.batchText = ev.Value
		_, reason := batch.Normalize(ev.Value)
		f.addressErr = reason

	case SetAmount:
		f.amount = ev.Value
		f.amountErr = f.validateAmountLocked(ev.Value)

	case SetCurrency:
		// Clearing prevents accidentally sending 1 XEC as 1 USD or the
		// reverse.
		f.currency = ev.Code
		f.amount = ""
		f.amountErr = ""

	case SetMessage:
		f.message = opreturn.Prepare(ev.Value, f.messageModeLocked())

	case SetAirdrop:
		f.airdrop = ev.TokenID != ""
		f.airdropTokenID = ev.TokenID

	case UseMax:
		return f.useMaxLocked(ctx)

	default:
		return fmt.Errorf("unknown form event %T", ev)
	}
	return nil
}

// useMaxLocked recomputes the fee-aware maximum. On failure only the amount
// error is touched; no unrelated field is cleared or corrupted.
func (f *Form) useMaxLocked(ctx context.Context) error {
	max, err := f.calc.MaxSendable(ctx, f.deps.WalletAddress)
	if err != nil {
		f.amountErr = fee.MsgMaxCalcFailed
		return err
	}

	f.currency = xec.Ticker
	f.amount = max.StringFixed(xec.Decimals)
	f.amountErr = ""
	return nil
}

func (f *Form) validateAmountLocked(value string) string {
	return amount.ValidateSend(value, f.balance, f.deps.Rates.Rate(), f.currency)
}

// revalidateAddressLocked recomputes the destination error for the active
// mode from the stored input. Empty input shows no error; submission
// re-derives validity regardless.
func (f *Form) revalidateAddressLocked() {
	if _, ok := f.mode.(Multi); ok {
		if strings.TrimSpace(f.batchText) == "" {
			f.addressErr = ""
			return
		}
		_, reason := batch.Normalize(f.batchText)
		f.addressErr = reason
		return
	}

	if f.address == "" {
		f.addressErr = ""
		return
	}
	parsed := address.ParseWithParams(f.address)
	f.addressErr = address.CheckSendAddress(parsed.Address)
}

func (f *Form) messageModeLocked() opreturn.Mode {
	if single, ok := f.mode.(Single); ok && single.Encrypted {
		return opreturn.Encrypted
	}
	if f.airdrop {
		return opreturn.AirdropPublic
	}
	return opreturn.Public
}

// Submit performs the one asynchronous operation: it re-derives validity
// synchronously (the last validation pass wins over anything cached from an
// earlier input cycle), builds a fresh request and hands it to the
// broadcaster. The sending flag is set for the duration and always cleared.
// On failure the form is preserved so the user can retry; success clears it.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.sending {
		f.mu.Unlock()
		return "", ErrSendInProgress
	}
	f.sending = true
	req, err := f.buildRequestLocked()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.sending = false
		f.mu.Unlock()
	}()

	if err != nil {
		return "", err
	}

	link, err := f.deps.Broadcaster.Send(ctx, *req)
	if err != nil {
		return "", err
	}

	var totalSats int64
	for _, r := range req.Recipients {
		totalSats += r.AmountSats
	}
	metrics.RecordSendAmount(totalSats)

	f.mu.Lock()
	f.clearLocked()
	f.mu.Unlock()
	return link, nil
}

func (f *Form) clearLocked() {
	f.address = ""
	f.queryString = ""
	f.batchText = ""
	f.amount = ""
	f.message = ""
	f.addressErr = ""
	f.amountErr = ""
	f.airdrop = false
	f.airdropTokenID = ""
}

// RouteParams are optional inbound navigation parameters used to
// pre-populate the form. Consumed once at initialization.
type RouteParams struct {
	ReplyAddress      string
	ContactAddress    string
	AirdropRecipients string
	AirdropTokenID    string
	Address           string
	Amount            string
}

// InitFromRoute pre-populates the form from deep-link parameters.
func (f *Form) InitFromRoute(ctx context.Context, p RouteParams) {
	switch {
	case p.ReplyAddress != "":
		_ = f.Apply(ctx, SetAddress{Value: p.ReplyAddress})
		_ = f.Apply(ctx, SetAmount{Value: xec.DustXec.String()})

	case p.ContactAddress != "":
		_ = f.Apply(ctx, SetAddress{Value: p.ContactAddress})

	case p.AirdropRecipients != "" && p.AirdropTokenID != "":
		_ = f.Apply(ctx, SetMode{Multi: true})
		_ = f.Apply(ctx, SetBatch{Value: p.AirdropRecipients})
		_ = f.Apply(ctx, SetAirdrop{TokenID: p.AirdropTokenID})

	case p.Address != "":
		_ = f.Apply(ctx, SetAddress{Value: p.Address})
		if p.Amount != "" {
			_ = f.Apply(ctx, SetAmount{Value: p.Amount})
		}
	}
}

// State is a read-only snapshot of the form for callers rendering it.
type State struct {
	Multi          bool
	Encrypted      bool
	Address        string
	Batch          string
	Amount         string
	Currency       string
	Message        string
	QueryString    string
	AirdropTokenID string
	Balance        decimal.Decimal
	AddressError   string
	AmountError    string
	Sending        bool
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	single, _ := f.mode.(Single)
	_, multi := f.mode.(Multi)
	return State{
		Multi:          multi,
		Encrypted:      single.Encrypted,
		Address:        f.address,
		Batch:          f.batchText,
		Amount:         f.amount,
		Currency:       f.currency,
		Message:        f.message,
		QueryString:    f.queryString,
		AirdropTokenID: f.airdropTokenID,
		Balance:        f.balance,
		AddressError:   f.addressErr,
		AmountError:    f.amountErr,
		Sending:        f.sending,
	}
}
