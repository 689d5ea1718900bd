package tagutil_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate/profiler-metrics-reporter/reporterconfig"
	"github.com/agate/profiler-metrics-reporter/tagutil"
)

var _ = Describe("Derive", func() {
	It("derives no tags from an empty mapping", func() {
		tags, err := tagutil.Derive("", "api.prod")
		Expect(err).ToNot(HaveOccurred())
		Expect(tags).To(BeEmpty())
	})

	It("pairs mapping keys with prefix segments in order", func() {
		tags, err := tagutil.Derive("service.env", "api.prod")
		Expect(err).ToNot(HaveOccurred())
		Expect(tags).To(Equal(tagutil.TagSet{
			{Key: "service", Value: "api"},
			{Key: "env", Value: "prod"},
		}))
	})

	It("returns a configuration error when the segment counts differ", func() {
		_, err := tagutil.Derive("service", "api.prod")

		var confErr *reporterconfig.Error
		Expect(errors.As(err, &confErr)).To(BeTrue())
		Expect(confErr.Option).To(Equal("tagMapping"))
		Expect(confErr.Reason).To(ContainSubstring("api.prod"))
	})

	It("skips segments mapped to the SKIP key", func() {
		tags, err := tagutil.Derive("role.SKIP.host", "bigdata.profiler.worker-3")
		Expect(err).ToNot(HaveOccurred())
		Expect(tags).To(Equal(tagutil.TagSet{
			{Key: "role", Value: "bigdata"},
			{Key: "host", Value: "worker-3"},
		}))
	})
})

var _ = Describe("TagSet", func() {
	It("converts to a plain map", func() {
		tags := tagutil.TagSet{{Key: "service", Value: "api"}, {Key: "env", Value: "prod"}}
		Expect(tags.Map()).To(Equal(map[string]string{"service": "api", "env": "prod"}))
	})

	It("looks up keys", func() {
		tags := tagutil.TagSet{{Key: "env", Value: "prod"}}
		value, ok := tags.Lookup("env")
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("prod"))

		_, ok = tags.Lookup("service")
		Expect(ok).To(BeFalse())
	})
})
