package generator

import (
	"github.com/satori/go.uuid"
)

// StringGenerator hands out record ids for the stores that do not
// generate their own (postgres, memory).
type StringGenerator struct {
}

func (n *StringGenerator) GenerateUuid() string {
	return uuid.NewV4().String()
}
