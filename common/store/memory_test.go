package store_test

import (
	. "github.com/littleones/daycare-api/common/store"

	. "github.com/onsi/ginkgo"
)

var _ = Describe("MemoryStore", func() {
	itBehavesLikeAStore(func() Store {
		return &MemoryStore{
			StringGenerator: &sequenceGenerator{},
			MaxInSetSize:    3,
		}
	})
})
