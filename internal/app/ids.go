package app

import (
	"strings"

	"github.com/google/uuid"
)

const orderIDPrefix = "axn_"

func newOrderID() string {
	return orderIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
