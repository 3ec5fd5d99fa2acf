package render

import (
	"testing"

	"mdpuppy/internal/domain/content"

	"github.com/stretchr/testify/assert"
)

func TestLongDate(t *testing.T) {
	cases := map[string]string{
		content.DefaultDate:        "January  1, 1970 | 12:00 am",
		"2022-02-08T15:16:00-0500": "February  8, 2022 |  3:16 pm",
		"2021-12-25T12:05:00Z":     "December 25, 2021 | 12:05 pm",
		"2022-03-01":               "March  1, 2022 | 12:00 am",
		"someday":                  "someday",
	}
	for in, want := range cases {
		assert.Equal(t, want, LongDate(in), in)
	}
}
