package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) generate(prefix string) string {
	id, err := gonanoid.New(21)
	if err != nil {
		return prefix + "_fallback"
	}
	return prefix + "_" + id
}

func (g *Generator) GenerateRunID() string {
	return g.generate("mhr")
}

func (g *Generator) GenerateExampleID() string {
	return g.generate("mhe")
}

func (g *Generator) GenerateRequestID() string {
	return g.generate("mhq")
}

func (g *Generator) GeneratePassageID() string {
	return g.generate("mhp")
}
