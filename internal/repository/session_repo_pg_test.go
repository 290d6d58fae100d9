package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewSessionRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewSessionRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewTimeSlotRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewTimeSlotRepository(pool))
}

func TestNewRestaurantRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewRestaurantRepository(pool))
}

func TestNewUserRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewUserRepository(pool))
}
