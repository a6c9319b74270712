package controllers

import (
	"auroragov/cache"
	"auroragov/config"
	"auroragov/tools"
)

// Dependências injetadas no boot (main) - os handlers não leem env nem
// constroem clients por conta própria, o que mantém tudo testável com
// fakes (ver *_test.go).
var (
	conf       config.Configuration
	llmClient  *tools.OpenRouterClient
	modelCache *cache.Cache
)

func SetConfigurations(c config.Configuration) {
	conf = c
}

func SetLLMClient(c *tools.OpenRouterClient) {
	llmClient = c
}

// SetModelCache aceita nil (cache desligado).
func SetModelCache(c *cache.Cache) {
	modelCache = c
}
