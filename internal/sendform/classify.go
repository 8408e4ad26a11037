package sendform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xecwallet/sendd/internal/broadcast"
	"github.com/xecwallet/sendd/internal/xec"
)

// MsgCongestion replaces the raw node error when a send hits the mempool
// ancestor limit.
const MsgCongestion = "The " + xec.Ticker + " you are trying to send has too many unconfirmed ancestors to send (limit 50). " +
	"Sending will be possible after a block confirmation. Try again in about 10 minutes."

// ClassifyBroadcastError maps an opaque broadcaster failure to a display
// message. The known congestion signature gets a specific actionable
// message; otherwise the failure's own message or error text is used, and an
// unrecognized shape degrades to a serialized form. It never panics and
// never returns an empty message for a non-nil error.
func ClassifyBroadcastError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *broadcast.APIError
	if errors.As(err, &apiErr) {
		if strings.Contains(apiErr.ErrText, xec.CongestionSignature) ||
			strings.Contains(apiErr.Message, xec.CongestionSignature) ||
			strings.Contains(apiErr.Raw, xec.CongestionSignature) {
			return MsgCongestion
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.ErrText != "" {
			return apiErr.ErrText
		}
		if apiErr.Raw != "" {
			return apiErr.Raw
		}
		return fmt.Sprintf("broadcast failed with status %d", apiErr.StatusCode)
	}

	if strings.Contains(err.Error(), xec.CongestionSignature) {
		return MsgCongestion
	}
	return err.Error()
}
