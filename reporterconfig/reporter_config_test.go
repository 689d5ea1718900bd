package reporterconfig_test

import (
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate/profiler-metrics-reporter/reporterconfig"
)

var _ = Describe("Configuration", func() {
	BeforeEach(func() {
		os.Clearenv()
	})

	It("successfully parses a valid config", func() {
		conf, err := reporterconfig.Parse("../config/profiler-reporter.json")
		Expect(err).ToNot(HaveOccurred())
		Expect(conf.Server).To(Equal("localhost"))
		Expect(conf.Port).To(Equal(8086))
		Expect(conf.MetricsPrefix).To(Equal("bigdata.profiler.localhost"))
		Expect(conf.Arguments.Get("username")).To(Equal("profiler"))
		Expect(conf.Arguments.Get("password")).To(Equal("secret"))
		Expect(conf.Arguments.Get("database")).To(Equal("profiler_metrics"))
		Expect(conf.Arguments.Get("tagMapping")).To(Equal("role.application.host"))
		Expect(conf.Arguments.Bool("useHttps")).To(BeFalse())
	})

	It("successfully overwrites file config values with environmental variables", func() {
		os.Setenv("REPORTER_SERVER", "influx.internal")
		os.Setenv("REPORTER_PORT", "8087")
		os.Setenv("REPORTER_METRICSPREFIX", "bigdata.profiler.env-host")

		conf, err := reporterconfig.Parse("../config/profiler-reporter.json")
		Expect(err).ToNot(HaveOccurred())
		Expect(conf.Server).To(Equal("influx.internal"))
		Expect(conf.Port).To(Equal(8087))
		Expect(conf.MetricsPrefix).To(Equal("bigdata.profiler.env-host"))
	})

	It("returns an error for a missing config file", func() {
		_, err := reporterconfig.Parse("../config/no-such-file.json")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("can not read config file"))
	})

	Describe("Validate", func() {
		It("rejects a configuration without a server", func() {
			conf := &reporterconfig.Configuration{Port: 8086, MetricsPrefix: "app.host"}

			err := conf.Validate()
			var confErr *reporterconfig.Error
			Expect(errors.As(err, &confErr)).To(BeTrue())
			Expect(confErr.Option).To(Equal("server"))
		})

		It("rejects a configuration with an out of range port", func() {
			conf := &reporterconfig.Configuration{Server: "localhost", Port: 70000, MetricsPrefix: "app.host"}

			err := conf.Validate()
			var confErr *reporterconfig.Error
			Expect(errors.As(err, &confErr)).To(BeTrue())
			Expect(confErr.Option).To(Equal("port"))
		})

		It("rejects a configuration without a metrics prefix", func() {
			conf := &reporterconfig.Configuration{Server: "localhost", Port: 8086}

			err := conf.Validate()
			var confErr *reporterconfig.Error
			Expect(errors.As(err, &confErr)).To(BeTrue())
			Expect(confErr.Option).To(Equal("metricsPrefix"))
		})
	})

	Describe("Arguments", func() {
		It("reads boolean options leniently", func() {
			args := reporterconfig.Arguments{"useHttps": "true", "broken": "yes please"}
			Expect(args.Bool("useHttps")).To(BeTrue())
			Expect(args.Bool("broken")).To(BeFalse())
			Expect(args.Bool("absent")).To(BeFalse())
		})

		It("distinguishes absent keys from empty values", func() {
			args := reporterconfig.Arguments{"database": ""}
			_, present := args.Lookup("database")
			Expect(present).To(BeTrue())
			_, present = args.Lookup("username")
			Expect(present).To(BeFalse())
		})
	})
})
