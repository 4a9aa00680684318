package reports

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("helpers", func() {

	Describe("chunkIds", func() {
		It("should split ids in chunks of the given size", func() {
			Expect(chunkIds([]string{"a", "b", "c", "d", "e"}, 2)).To(Equal([][]string{{"a", "b"}, {"c", "d"}, {"e"}}))
		})
		It("should keep a set that fits in one chunk", func() {
			Expect(chunkIds([]string{"a", "b"}, 30)).To(Equal([][]string{{"a", "b"}}))
		})
		It("should not produce chunks for an empty set", func() {
			Expect(chunkIds(nil, 30)).To(BeEmpty())
		})
	})

	Describe("idSet", func() {
		It("should drop blanks and duplicates", func() {
			set := newIdSet()
			for _, id := range []string{"b", "", "a", "b", "a", "c"} {
				set.add(id)
			}
			Expect(set.ids).To(Equal([]string{"b", "a", "c"}))
		})
	})
})
