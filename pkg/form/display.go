package form

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lumenarts/forge/pkg/model"
)

// dateLayouts lists the accepted input formats, most specific first. All of
// them normalise to DateLayout on commit.
var dateLayouts = []string{
	time.RFC3339,
	DateLayout,
	"2006/01/02",
	"Jan 2, 2006",
}

func timeParse(text string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, text)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatValue renders a committed value as its display string: booleans as
// Yes/No, numbers without trailing zeros, dates in DateLayout. An empty
// string means "nothing to show"; callers decide the placeholder.
func FormatValue(field model.Field, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	case time.Time:
		return v.Format(DateLayout)
	default:
		return fmt.Sprint(v)
	}
}
