package sendform

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xecwallet/sendd/internal/broadcast"
	"github.com/xecwallet/sendd/internal/fee"
	"github.com/xecwallet/sendd/internal/metrics"
	"github.com/xecwallet/sendd/internal/xec"
)

// Handler exposes the send form over HTTP. Each request reconstructs the
// form from the posted snapshot, so validity is always re-derived against
// the values actually submitted.
type Handler struct {
	deps Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/send", h.Send)
	e.POST("/v1/validate", h.Validate)
	e.GET("/v1/max-amount", h.MaxAmount)
	e.GET("/v1/rate", h.RateQuote)
	e.GET("/healthz", h.Health)
}

// SendParams is a snapshot of the user-entered form.
type SendParams struct {
	Mode           string `json:"mode"` // "single" or "multi"
	Address        string `json:"address,omitempty"`
	Recipients     string `json:"recipients,omitempty"` // line-delimited address,amount
	Amount         string `json:"amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Message        string `json:"message,omitempty"`
	Encrypted      bool   `json:"encrypted,omitempty"`
	AirdropTokenID string `json:"airdropTokenId,omitempty"`
}

type fieldErrors struct {
	AddressError string `json:"addressError,omitempty"`
	AmountError  string `json:"amountError,omitempty"`
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// formFromParams rebuilds a form from the snapshot, refreshing the balance
// first so the amount check runs against current funds. Event order matters:
// currency before amount, since switching currency clears the amount. Field
// events are scoped to the resolved mode so a stray single-recipient address
// in a multi payload (or batch text in a single one) cannot clobber the
// active mode's validation state.
func (h *Handler) formFromParams(ctx context.Context, p *SendParams) (*Form, error) {
	form := New(h.deps)
	if err := form.RefreshBalance(ctx); err != nil {
		return nil, err
	}

	if p.Mode == string(broadcast.ModeMulti) {
		_ = form.Apply(ctx, SetMode{Multi: true})
	}
	if p.Encrypted {
		_ = form.Apply(ctx, SetEncrypted{Encrypted: true})
	}
	if p.AirdropTokenID != "" {
		_ = form.Apply(ctx, SetAirdrop{TokenID: p.AirdropTokenID})
	}
	if p.Currency != "" {
		_ = form.Apply(ctx, SetCurrency{Code: p.Currency})
	}

	if form.State().Multi {
		if p.Recipients != "" {
			_ = form.Apply(ctx, SetBatch{Value: p.Recipients})
		}
	} else {
		if p.Address != "" {
			_ = form.Apply(ctx, SetAddress{Value: p.Address})
		}
		if p.Amount != "" {
			_ = form.Apply(ctx, SetAmount{Value: p.Amount})
		}
	}
	if p.Message != "" {
		_ = form.Apply(ctx, SetMessage{Value: p.Message})
	}
	return form, nil
}

func (h *Handler) Send(c echo.Context) error {
	var params SendParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	ctx := c.Request().Context()
	mode := string(broadcast.ModeSingle)
	if params.Mode == string(broadcast.ModeMulti) {
		mode = string(broadcast.ModeMulti)
	}

	form, err := h.formFromParams(ctx, &params)
	if err != nil {
		h.deps.Logger.Errorf("failed to prepare form: %v", err)
		return c.JSON(http.StatusBadGateway, errorBody("unable to reach the wallet backend"))
	}

	link, err := form.Submit(ctx)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			metrics.RecordSendAttempt(mode, "validation_error")
			return c.JSON(http.StatusBadRequest, map[string]string{
				"field": vErr.Field,
				"error": vErr.Reason,
			})
		}
		if errors.Is(err, ErrSendInProgress) {
			return c.JSON(http.StatusConflict, errorBody(err.Error()))
		}

		metrics.RecordSendAttempt(mode, "broadcast_error")
		msg := ClassifyBroadcastError(err)
		h.deps.Logger.Warnf("send failed: %s", msg)
		return c.JSON(http.StatusBadGateway, errorBody(msg))
	}

	metrics.RecordSendAttempt(mode, "ok")
	return c.JSON(http.StatusOK, map[string]string{"transactionLink": link})
}

func (h *Handler) Validate(c echo.Context) error {
	var params SendParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	form, err := h.formFromParams(c.Request().Context(), &params)
	if err != nil {
		h.deps.Logger.Errorf("failed to prepare form: %v", err)
		return c.JSON(http.StatusBadGateway, errorBody("unable to reach the wallet backend"))
	}

	state := form.State()
	return c.JSON(http.StatusOK, fieldErrors{
		AddressError: state.AddressError,
		AmountError:  state.AmountError,
	})
}

func (h *Handler) MaxAmount(c echo.Context) error {
	calc := fee.NewCalculator(h.deps.Outputs, h.deps.FeeRate)
	max, err := calc.MaxSendable(c.Request().Context(), h.deps.WalletAddress)
	if err != nil {
		metrics.RecordMaxCalc(false)
		h.deps.Logger.Warnf("max-amount calculation failed: %v", err)
		return c.JSON(http.StatusBadGateway, errorBody(fee.MsgMaxCalcFailed))
	}

	metrics.RecordMaxCalc(true)
	return c.JSON(http.StatusOK, map[string]string{
		"maxAmount": max.StringFixed(xec.Decimals),
		"currency":  xec.Ticker,
	})
}

func (h *Handler) RateQuote(c echo.Context) error {
	rate := h.deps.Rates.Rate()
	if rate == nil {
		return c.JSON(http.StatusOK, map[string]any{"rate": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"rate": rate.String()})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
