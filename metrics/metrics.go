package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	LLMAttempts        prometheus.Counter
	LLMFailures        prometheus.Counter
	AuditsTotal        prometheus.Counter
	AnalisesTotal      prometheus.Counter
	ChatTurnsTotal     prometheus.Counter
	UsageWriteFailures prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			LLMAttempts: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "llm_attempts_total",
				Help:      "Total de tentativas de chamada ao agregador de LLM",
			}),
			LLMFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "llm_failures_total",
				Help:      "Total de tentativas de modelo que falharam",
			}),
			AuditsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "audits_total",
				Help:      "Total de auditorias de edital concluídas",
			}),
			AnalisesTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "analises_total",
				Help:      "Total de análises de documento concluídas",
			}),
			ChatTurnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "chat_turns_total",
				Help:      "Total de turnos de chat processados",
			}),
			UsageWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "auroragov",
				Name:      "usage_write_failures_total",
				Help:      "Total de falhas engolidas ao gravar o agregado de uso",
			}),
		}
		prometheus.MustRegister(
			global.LLMAttempts,
			global.LLMFailures,
			global.AuditsTotal,
			global.AnalisesTotal,
			global.ChatTurnsTotal,
			global.UsageWriteFailures,
		)
	})
	return global
}
