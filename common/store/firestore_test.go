package store_test

import (
	"context"
	"fmt"
	"os"

	. "github.com/littleones/daycare-api/common/store"

	"cloud.google.com/go/firestore"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// Runs against the firestore emulator only.
var _ = Describe("FirestoreStore", func() {
	var client *firestore.Client

	BeforeEach(func() {
		if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
			Skip("FIRESTORE_EMULATOR_HOST is not set")
		}

		var err error
		client, err = firestore.NewClient(context.Background(), "daycare-test")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if client != nil {
			client.Close()
		}
	})

	itBehavesLikeAStore(func() Store {
		s := NewFirestoreStore(client, 3)
		for _, collection := range Collections {
			if err := s.ClearCollection(context.Background(), collection); err != nil {
				panic(fmt.Sprintf("failed to clear %s: %v", collection, err))
			}
		}
		return s
	})
})
