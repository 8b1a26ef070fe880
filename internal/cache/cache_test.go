package cache

import (
	"testing"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// фиксируемые часы для проверки истечения снимков
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.Now
	return c, clock
}

func employees(ids ...int64) []domain.Employee {
	out := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Employee{ID: id, LastName: "Иванов", FirstName: "Иван"})
	}
	return out
}

func TestCacheEmptyByDefault(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.GetEmployees()
	assert.False(t, ok)

	_, ok = c.GetDepartments()
	assert.False(t, ok)

	_, ok = c.EmployeeByID(1)
	assert.False(t, ok)
}

func TestCacheReturnsFreshSnapshot(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	list := employees(1, 2, 3)
	c.SetEmployees(list)

	got, ok := c.GetEmployees()
	require.True(t, ok)
	assert.Equal(t, list, got)
}

func TestCacheExpiresWholeSnapshot(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.SetEmployees(employees(1))

	clock.Advance(59 * time.Second)
	_, ok := c.GetEmployees()
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.GetEmployees()
	assert.False(t, ok, "снимок должен истечь ровно по TTL")
}

func TestCacheIndexIgnoresTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.SetEmployees(employees(1, 2))

	clock.Advance(time.Hour)

	_, ok := c.GetEmployees()
	require.False(t, ok)

	// Индекс по id живёт до явной инвалидации
	emp, ok := c.EmployeeByID(2)
	require.True(t, ok)
	assert.Equal(t, int64(2), emp.ID)

	_, ok = c.EmployeeByID(99)
	assert.False(t, ok)

	c.InvalidateEmployees()
	_, ok = c.EmployeeByID(2)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.SetEmployees(employees(1))
	c.SetDepartments([]domain.Department{{ID: 5, Name: "ИТ"}})

	c.InvalidateEmployees()
	_, ok := c.GetEmployees()
	assert.False(t, ok)

	dept, ok := c.DepartmentByID(5)
	require.True(t, ok)
	assert.Equal(t, "ИТ", dept.Name)

	c.InvalidateAll()
	_, ok = c.GetDepartments()
	assert.False(t, ok)
	_, ok = c.DepartmentByID(5)
	assert.False(t, ok)
}

func TestCacheRepopulateAfterExpiry(t *testing.T) {
	c, clock := newTestCache(time.Second)

	c.SetEmployees(employees(1))
	got, ok := c.GetEmployees()
	require.True(t, ok)
	require.Len(t, got, 1)

	clock.Advance(time.Second)
	_, ok = c.GetEmployees()
	require.False(t, ok)

	c.SetEmployees(employees(1, 2))
	got, ok = c.GetEmployees()
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestCacheDefaultTTL(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
