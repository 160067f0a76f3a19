package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartSubtotal(t *testing.T) {
	items := []CartItem{
		{Price: 999, Quantity: 2},
		{Price: 50, Quantity: 1},
	}

	assert.Equal(t, 2048.0, CartSubtotal(items))
}

func TestCartSubtotalIsOrderIndependent(t *testing.T) {
	items := []CartItem{
		{Price: 10.5, Quantity: 3},
		{Price: 0.99, Quantity: 7},
		{Price: 120, Quantity: 1},
	}
	reversed := []CartItem{items[2], items[1], items[0]}

	assert.Equal(t, CartSubtotal(items), CartSubtotal(reversed))
}

func TestCartSubtotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CartSubtotal(nil))
	assert.Equal(t, 0.0, CartSubtotal([]CartItem{}))
}
