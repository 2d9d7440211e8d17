package main

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseStart(t *testing.T) {
	g := NewGomegaWithT(t)

	recno, offset, err := parseStart("3,1024")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(recno).Should(Equal(3))
	g.Expect(offset).Should(BeEquivalentTo(1024))

	for _, bad := range []string{"", "1", "a,0", "1,b", "1,2,3"} {
		_, _, err := parseStart(bad)
		g.Expect(err).Should(HaveOccurred(), bad)
	}
}
