package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const serviceName = "creditwise"

// SetupLogging builds the JSON logger used by the server and migrations.
// LOG_LEVEL overrides the info default; an unknown level is reported and ignored.
func SetupLogging() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	})
	logger.AddHook(serviceHook{})

	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			logger.WithError(err).Warn("Logging.Setup.invalid LOG_LEVEL")
		} else {
			logger.SetLevel(level)
		}
	}

	return logger
}

// serviceHook tags every entry with the service name.
type serviceHook struct{}

func (serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = serviceName
	}
	return nil
}
