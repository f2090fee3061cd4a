package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rethinkk/pam-registry/internal/models"
)

func TestBusDeliversPerKind(t *testing.T) {
	bus := NewBus()

	assetCh, cancelAssets := bus.Subscribe(models.KindAsset)
	defer cancelAssets()
	personCh, cancelPeople := bus.Subscribe(models.KindPerson)
	defer cancelPeople()

	bus.Publish(Event{Kind: models.KindAsset, Op: OpUpsert, ID: "a1"})

	select {
	case ev := <-assetCh:
		assert.Equal(t, "a1", ev.ID)
		assert.False(t, ev.At.IsZero(), "publish stamps the event")
	default:
		t.Fatal("asset subscriber should have received the event")
	}

	select {
	case <-personCh:
		t.Fatal("person subscriber must not see asset events")
	default:
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(models.KindDocument)
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic
	bus.Publish(Event{Kind: models.KindDocument, Op: OpDelete, ID: "d1"})

	// cancelling twice is safe
	cancel()
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(models.KindAsset)
	defer cancel()

	// overflow the buffer; publish must never block
	for i := 0; i < subscriberBuffer*2; i++ {
		bus.Publish(Event{Kind: models.KindAsset, Op: OpUpsert, ID: "a"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Equal(t, subscriberBuffer, received)
}
