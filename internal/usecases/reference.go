package usecases

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	depositReferencePrefix    = "DEP"
	withdrawalReferencePrefix = "WTH"

	// CommissionReferencePrefix keys a commission credit to its order:
	// "COMM-<order id>" is the idempotency token for settlement.
	CommissionReferencePrefix = "COMM-"
)

// newReferenceID builds a correlation token: prefix, millisecond timestamp,
// short random suffix.
func newReferenceID(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return prefix + strconv.FormatInt(time.Now().UnixMilli(), 10) + suffix
}

func commissionReferenceID(orderID uuid.UUID) string {
	return CommissionReferencePrefix + orderID.String()
}
