package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotify(t *testing.T) {
	t.Cleanup(func() { RegisterReportFn(nil) })

	// nothing registered
	assert.NotPanics(t, func() { Notify(SeverityError, "generate", errors.New("dropped")) })

	var reports []Report
	RegisterReportFn(func(report Report) {
		reports = append(reports, report)
	})

	cause := errors.New("model call failed")
	Notify(SeverityError, "generate", cause)
	Notify(SeverityInfo, "generate", nil)

	if assert.Len(t, reports, 1) {
		assert.Equal(t, SeverityError, reports[0].Severity)
		assert.Equal(t, "generate", reports[0].Op)
		assert.Equal(t, cause, reports[0].Err)
	}
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "info", SeverityInfo.String())
}

func TestNotifyRecoversFromHookPanic(t *testing.T) {
	t.Cleanup(func() { RegisterReportFn(nil) })

	RegisterReportFn(func(report Report) {
		panic("monitor down")
	})

	assert.NotPanics(t, func() { Notify(SeverityInfo, "enrich", errors.New("x")) })
}
