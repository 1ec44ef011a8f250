package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdmedical/crm-import/internal/model"
)

func TestPriority(t *testing.T) {
	tests := []struct {
		label      string
		wantRank   int
		wantStatus model.SalesStatus
	}{
		{"#1", 1, model.SalesStatusActive},
		{"#2", 2, model.SalesStatusActive},
		{"#3", 3, model.SalesStatusActive},
		{"# 1", 1, model.SalesStatusActive},
		{"1", 1, model.SalesStatusActive},
		{"2", 2, model.SalesStatusActive},
		{"3", 3, model.SalesStatusActive},
		{"", 0, model.SalesStatusActive},
		{"   ", 0, model.SalesStatusActive},
		{"REMOVE anytime", 0, model.SalesStatusRemoved},
		{"please remove", 0, model.SalesStatusRemoved},
		{"#5", 0, model.SalesStatusActive},
		{"0", 0, model.SalesStatusActive},
		{"4", 0, model.SalesStatusActive},
		{"abc", 0, model.SalesStatusActive},
		{"#abc", 0, model.SalesStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			rank, status := Priority(tt.label)
			assert.Equal(t, tt.wantRank, rank)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
