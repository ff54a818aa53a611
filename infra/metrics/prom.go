package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/eventplan/core/metrics"
)

// PromSink records editor commands in Prometheus metrics.
type PromSink struct {
	commands *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	document *prometheus.GaugeVec
}

// NewPromSink registers editor metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventplan_commands_total",
		Help: "Total number of editor commands by outcome",
	}, []string{"command", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventplan_command_duration_seconds",
		Help:    "Time spent executing editor commands",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"command"})
	document := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "eventplan_document_entities",
		Help: "Number of entities in the open document",
	}, []string{"kind"})

	if err := reg.Register(commands); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			commands = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(document); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			document = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{commands: commands, latency: latency, document: document}, nil
}

// RecordCommand counts the command by outcome and observes its duration.
func (s *PromSink) RecordCommand(ev coremetrics.CommandEvent) error {
	s.commands.WithLabelValues(ev.Command, ev.Result()).Inc()
	s.latency.WithLabelValues(ev.Command).Observe(ev.Duration.Seconds())
	return nil
}

// RecordDocument sets one gauge per entity kind.
func (s *PromSink) RecordDocument(st coremetrics.DocumentStats) error {
	s.document.WithLabelValues("sessions").Set(float64(st.Sessions))
	s.document.WithLabelValues("locations").Set(float64(st.Locations))
	s.document.WithLabelValues("staff").Set(float64(st.Staff))
	s.document.WithLabelValues("task_types").Set(float64(st.TaskTypes))
	s.document.WithLabelValues("material_types").Set(float64(st.MaterialTypes))
	return nil
}
