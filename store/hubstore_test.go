package store

import (
	"testing"

	utils "github.com/minaorangina/arcade/internal"
	"github.com/stretchr/testify/assert"
)

type fakeHub struct {
	id     string
	closed bool
}

func (h *fakeHub) ID() string { return h.id }
func (h *fakeHub) Close()     { h.closed = true }

func TestInMemoryHubStore(t *testing.T) {
	t.Run("finds added hubs", func(t *testing.T) {
		str := NewInMemoryHubStore[*fakeHub]()
		hub := &fakeHub{id: "arcade-1"}
		utils.AssertNoError(t, str.Add(hub))

		got, err := str.Find("arcade-1")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, got, hub)
	})

	t.Run("prevents duplicate arcade IDs", func(t *testing.T) {
		str := NewInMemoryHubStore[*fakeHub]()
		utils.AssertNoError(t, str.Add(&fakeHub{id: "same"}))

		err := str.Add(&fakeHub{id: "same"})
		assert.ErrorIs(t, err, ErrDuplicateArcadeID)
	})

	t.Run("handles a non-existent arcade", func(t *testing.T) {
		str := NewInMemoryHubStore[*fakeHub]()
		_, err := str.Find("fake-id")
		assert.ErrorIs(t, err, ErrUnknownArcadeID)
		assert.ErrorIs(t, str.Remove("fake-id"), ErrUnknownArcadeID)
	})

	t.Run("remove closes the hub", func(t *testing.T) {
		str := NewInMemoryHubStore[*fakeHub]()
		hub := &fakeHub{id: "arcade-1"}
		utils.AssertNoError(t, str.Add(hub))

		utils.AssertNoError(t, str.Remove("arcade-1"))
		utils.AssertTrue(t, hub.closed)
		_, err := str.Find("arcade-1")
		assert.ErrorIs(t, err, ErrUnknownArcadeID)
	})

	t.Run("lists ids in order and closes everything", func(t *testing.T) {
		str := NewInMemoryHubStore[*fakeHub]()
		b, a := &fakeHub{id: "b"}, &fakeHub{id: "a"}
		utils.AssertNoError(t, str.Add(b))
		utils.AssertNoError(t, str.Add(a))
		assert.Equal(t, []string{"a", "b"}, str.IDs())

		str.CloseAll()
		utils.AssertTrue(t, a.closed)
		utils.AssertTrue(t, b.closed)
		assert.Empty(t, str.IDs())
	})
}
