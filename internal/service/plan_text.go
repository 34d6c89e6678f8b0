package service

import (
	"strings"

	"nail-llm/internal/domain"
)

// FormatPlanText arma el texto final del plan en el formato que consume
// el front: 【ネイルコンセプト】 y 【デザイン詳細】.
func FormatPlanText(c domain.Candidate) string {
	var sb strings.Builder
	sb.WriteString("【ネイルコンセプト】\n")
	sb.WriteString(c.Plan.Concept)
	sb.WriteString("\n\n【デザイン詳細】\n")
	sb.WriteString(c.Plan.Design)
	if len(c.Plan.Colors) > 0 {
		sb.WriteString("\n\nカラー: ")
		sb.WriteString(strings.Join(c.Plan.Colors, "、"))
	}
	if strings.TrimSpace(c.Plan.Technique) != "" {
		sb.WriteString("\n技法: ")
		sb.WriteString(c.Plan.Technique)
	}
	return sb.String()
}

// BuildImageEditPrompt construye la directiva (en ingles) para editar la
// foto de unias segun el candidato elegido. Las reglas fijas vienen del
// flujo de salon: editar solo las unias, mantener mano/luz/fondo.
func BuildImageEditPrompt(c domain.Candidate) string {
	var sb strings.Builder
	sb.WriteString("You are a professional nail artist.\n")
	sb.WriteString("Apply ONE subtle nail design to the photo, based strictly on this plan:\n")
	sb.WriteString("Concept: " + c.Plan.Concept + "\n")
	sb.WriteString("Design: " + c.Plan.Design + "\n")
	if len(c.Plan.Colors) > 0 {
		sb.WriteString("Colors: " + strings.Join(c.Plan.Colors, ", ") + "\n")
	}
	if strings.TrimSpace(c.Plan.Technique) != "" {
		sb.WriteString("Technique: " + c.Plan.Technique + "\n")
	}
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Keep the same hand, skin tone, lighting, background, and composition\n")
	sb.WriteString("- Edit ONLY the nails\n")
	sb.WriteString("- Add only 10-20% novelty\n")
	sb.WriteString("- Elegant, salon-realistic, wearable\n")
	sb.WriteString("- Avoid bold patterns, neon, heavy glitter, large stones\n")
	sb.WriteString("- No text, no watermark\n")
	return sb.String()
}
