package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/notify"
)

var mutationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pam_registry_mutations_total",
	Help: "Registry mutations by entity kind and operation.",
}, []string{"kind", "op"})

// ObserveBus counts every registry mutation that goes over the change bus.
// Returns a stop func that detaches the observer.
func ObserveBus(bus *notify.Bus) func() {
	kinds := []models.Kind{models.KindAsset, models.KindDocument, models.KindPerson}
	cancels := make([]func(), 0, len(kinds))
	for _, kind := range kinds {
		ch, cancel := bus.Subscribe(kind)
		cancels = append(cancels, cancel)
		go func() {
			for ev := range ch {
				mutationCounter.WithLabelValues(ev.Kind.String(), ev.Op).Inc()
			}
		}()
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
