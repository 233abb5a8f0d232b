package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateArtifactID gera o identificador de uma versão de artefato
func GenerateArtifactID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
