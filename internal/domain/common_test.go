package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderSide(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderSide
		wantErr bool
	}{
		{in: "buy", want: Buy},
		{in: "BUY", want: Buy},
		{in: " Sell ", want: Sell},
		{in: "short", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrderSide(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	assert.Equal(t, StatusFilled, ParseOrderStatus("FILLED"))
	assert.Equal(t, StatusCancelled, ParseOrderStatus("CANCELED"))
	assert.Equal(t, StatusCancelled, ParseOrderStatus("expired"))
	assert.Equal(t, StatusPending, ParseOrderStatus("NEW"))
	assert.Equal(t, StatusRejected, ParseOrderStatus("Rejected"))
	assert.Equal(t, OrderStatus("weird"), ParseOrderStatus("WEIRD"))
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("Weekly")
	require.NoError(t, err)
	assert.Equal(t, TimeframeWeekly, tf)

	tf, err = ParseTimeframe("all")
	require.NoError(t, err)
	assert.Equal(t, TimeframeAll, tf)

	_, err = ParseTimeframe("yearly")
	assert.Error(t, err)
}

func TestOrderFillPrice(t *testing.T) {
	o := &Order{Price: 10}
	assert.Equal(t, 10.0, o.FillPrice())

	o.ExecutionPrice = Float64(10.5)
	assert.Equal(t, 10.5, o.FillPrice())
}
