package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func success(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func failure(msg string) string {
	return failureStyle.Render("✗ " + msg)
}
