package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/config"
)

func clearConfigEnvVars() {
	envVars := []string{
		"PWA_CONFIG",
		"PWA_ADDR",
		"PWA_LOG_LEVEL",
		"PWA_EMPLOYEE_DATA_PATH",
		"PWA_SENIOR_LEVEL",
		"PWA_SENIOR_REVIEW_LIMIT",
		"PWA_SUGGESTION_MIN_LEVEL",
		"PWA_SUGGESTION_MAX_LEVEL",
		"PWA_AUDIT_WORKERS",
		"PWA_AUDIT_QUEUE_CAPACITY",
		"PWA_DEMO_SEED",
		"PWA_RANDOM_SEED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		Convey("Then it should carry the documented defaults", func() {
			So(cfg.Addr, ShouldEqual, ":3000")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.EmployeeDataPath, ShouldEqual, "data/employees.json")
			So(cfg.SeniorLevel, ShouldEqual, 10)
			So(cfg.SeniorReviewLimit, ShouldEqual, 2)
			So(cfg.SuggestionMinLevel, ShouldEqual, 8)
			So(cfg.SuggestionMaxLevel, ShouldEqual, 11)
			So(cfg.AuditWorkers, ShouldEqual, 2)
			So(cfg.AuditQueueCapacity, ShouldEqual, 4096)
			So(cfg.DemoSeed, ShouldBeTrue)
			So(cfg.RandomSeed, ShouldEqual, 0)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a config loader", t, func() {
		ctx := context.Background()

		Convey("When loading with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should succeed with defaults", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldNotBeNil)
				So(cfg.Addr, ShouldEqual, ":3000")
				So(cfg.SeniorLevel, ShouldEqual, 10)
				So(cfg.DemoSeed, ShouldBeTrue)
			})
		})

		Convey("When loading with environment overrides", func() {
			_ = os.Setenv("PWA_ADDR", ":9090")
			_ = os.Setenv("PWA_SENIOR_LEVEL", "12")
			_ = os.Setenv("PWA_DEMO_SEED", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then env vars should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.SeniorLevel, ShouldEqual, 12)
				So(cfg.DemoSeed, ShouldBeFalse)
				So(cfg.SeniorReviewLimit, ShouldEqual, 2) // untouched
			})
		})

		Convey("When loading with a YAML file", func() {
			path := writeTempConfig(t, "addr: \":4000\"\nlog_level: debug\nsenior_review_limit: 3\n")
			_ = os.Setenv("PWA_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should merge the file over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":4000")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.SeniorReviewLimit, ShouldEqual, 3)
				So(cfg.SeniorLevel, ShouldEqual, 10) // from defaults
			})
		})

		Convey("When loading with both file and environment", func() {
			path := writeTempConfig(t, "addr: \":4000\"\nsenior_level: 9\n")
			_ = os.Setenv("PWA_CONFIG", path)
			_ = os.Setenv("PWA_ADDR", ":5000")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then environment should win over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5000")
				So(cfg.SeniorLevel, ShouldEqual, 9)
			})
		})

		Convey("When the configured file does not exist", func() {
			_ = os.Setenv("PWA_CONFIG", "/non/existent/config.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When an override breaks validation", func() {
			cases := map[string]string{
				"PWA_ADDR":               "",
				"PWA_EMPLOYEE_DATA_PATH": "",
				"PWA_SENIOR_LEVEL":       "0",
				"PWA_AUDIT_WORKERS":      "0",
			}
			for key, value := range cases {
				Convey("Then "+key+"="+value+" is rejected", func() {
					_ = os.Setenv(key, value)
					defer clearConfigEnvVars()

					cfg, err := config.Load(ctx)
					So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
					So(cfg, ShouldBeNil)
				})
			}
		})

		Convey("When the suggestion band is inverted", func() {
			_ = os.Setenv("PWA_SUGGESTION_MIN_LEVEL", "11")
			_ = os.Setenv("PWA_SUGGESTION_MAX_LEVEL", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			So(cfg, ShouldBeNil)
		})
	})
}
