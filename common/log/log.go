package log

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"regexp"
	"time"
	"unicode"

	"github.com/go-kit/kit/log"
)

const (
	LvlDebug = "DEBUG"
	LvlInfo  = "INFO"
	LvlWarn  = "WARNING"
	LvlErr   = "ERROR"
)

type requestIdKey struct{}

func NewLogger(component string) *Logger {
	return NewLoggerWithWriter(component, os.Stderr)
}

func NewLoggerWithWriter(component string, w io.Writer) *Logger {
	var kitlogger log.Logger
	kitlogger = log.NewJSONLogger(log.NewSyncWriter(w))
	kitlogger = log.With(kitlogger, "ts", log.DefaultTimestampUTC)
	kitlogger = log.With(kitlogger, "component", component)

	return &Logger{
		kitlogger,
	}
}

type Logger struct {
	log.Logger
}

func (l *Logger) Debug(ctx context.Context, message string, keyvals ...interface{}) {
	l.logWithLvl(ctx, LvlDebug, message, keyvals)
}

func (l *Logger) Info(ctx context.Context, message string, keyvals ...interface{}) {
	l.logWithLvl(ctx, LvlInfo, message, keyvals)
}

func (l *Logger) Warn(ctx context.Context, message string, keyvals ...interface{}) {
	l.logWithLvl(ctx, LvlWarn, message, keyvals)
}

func (l *Logger) Err(ctx context.Context, message string, keyvals ...interface{}) {
	l.logWithLvl(ctx, LvlErr, message, keyvals)
}

// Print implements the gorm logger.
func (l *Logger) Print(v ...interface{}) {
	if len(v) < 2 {
		return
	}
	keyvals := []interface{}{}

	if v[0] == "sql" && len(v) >= 5 {
		if d, ok := v[2].(time.Duration); ok {
			keyvals = append(keyvals, "duration", fmt.Sprintf("%.2f", float64(d.Nanoseconds()/1e4)/100.0))
		}
		query, _ := v[3].(string)
		values, _ := v[4].([]interface{})
		keyvals = append(keyvals, "query", formatSql(query, values))
	} else {
		keyvals = append(keyvals, v[2:]...)
	}
	l.logWithLvl(context.Background(), LvlInfo, "new database query", keyvals)
}

func (l *Logger) logWithLvl(ctx context.Context, lvl string, message string, keyvals []interface{}) {
	if requestId, ok := ctx.Value(requestIdKey{}).(string); ok {
		keyvals = append(keyvals, "requestId", requestId)
	}
	keyvals = append(keyvals, "level", lvl, "msg", message)
	l.Log(keyvals...)
}

var (
	sqlRegexp = regexp.MustCompile(`(\$\d+)|\?`)
)

func formatSql(query string, values []interface{}) string {
	var formattedValues []string
	for _, value := range values {
		indirectValue := reflect.Indirect(reflect.ValueOf(value))
		if !indirectValue.IsValid() {
			formattedValues = append(formattedValues, "NULL")
			continue
		}
		value = indirectValue.Interface()
		if t, ok := value.(time.Time); ok {
			formattedValues = append(formattedValues, fmt.Sprintf("'%v'", t.Format(time.RFC3339)))
		} else if b, ok := value.([]byte); ok {
			if str := string(b); isPrintable(str) {
				formattedValues = append(formattedValues, fmt.Sprintf("'%v'", str))
			} else {
				formattedValues = append(formattedValues, "'<binary>'")
			}
		} else if r, ok := value.(driver.Valuer); ok {
			if value, err := r.Value(); err == nil && value != nil {
				formattedValues = append(formattedValues, fmt.Sprintf("'%v'", value))
			} else {
				formattedValues = append(formattedValues, "NULL")
			}
		} else {
			formattedValues = append(formattedValues, fmt.Sprintf("'%v'", value))
		}
	}

	var sql string
	for index, value := range sqlRegexp.Split(query, -1) {
		sql += value
		if index < len(formattedValues) {
			sql += formattedValues[index]
		}
	}
	return sql
}

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (l *Logger) RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ctx := req.Context()
		if requestId := req.Header.Get("X-Request-Id"); requestId != "" {
			ctx = context.WithValue(ctx, requestIdKey{}, requestId)
			req = req.WithContext(ctx)
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		l.Info(ctx, "new http request",
			"method", req.Method,
			"uri", req.RequestURI,
			"status", recorder.status,
			"duration", time.Since(start).String())
	})
}
