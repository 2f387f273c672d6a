package marketdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

/*
	{
	    "series": {
	        "intraday": {
	            "data": [
	                [1709391000, 188.23],
	                [1709391300, 188.51]
	            ]
	        }
	    }
	}
*/

// LastSparkPrice extracts the latest traded price from the provider's spark
// chart payload. The endpoint backs the provider's own mini charts, which is
// why its shape is loose json rather than a documented schema; it is the
// fallback when the quote endpoint has nothing for a symbol.
func (c *Client) LastSparkPrice(symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/spark?symbol=%s&series=intraday&type=mini&token=%s", c.base, symbol, c.apiKey)
	var jobj any
	err := jwget(c.live, addr, &jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes, this weird API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("cannot read value for %q: neither a float nor a string", symbol)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("cannot read value for %q: invalid string %q: %w", symbol, sval, err)
		}
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty spark value for %q", symbol)
	}
	return val, nil
}
