package log

import (
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// SetLogFile write log to file with rotation.
// rotation is in hours, maxAge is in days. zero values use the defaults
// of one rotation per day keeping logs for 30 days.
func SetLogFile(logFile string, rotation, maxAge uint64) {
	if logFile == "" {
		return
	}
	if rotation == 0 {
		rotation = 24
	}
	if maxAge == 0 {
		maxAge = 30
	}
	writer, err := rotatelogs.New(
		logFile+".%Y%m%d%H",
		rotatelogs.WithLinkName(logFile),
		rotatelogs.WithRotationTime(time.Duration(rotation)*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
	)
	if err != nil {
		logrus.Fatalf("create rotate logs writer failed. logfile=%v err=%v", logFile, err)
	}
	logrus.SetOutput(writer)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		ForceQuote:      true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableSorting:  true,
	})
	logrus.Infof("start write log to file. logfile=%v rotation=%vh maxAge=%vd", logFile, rotation, maxAge)
}
