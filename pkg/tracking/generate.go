package tracking

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/tracking.go -source tracking.go Service
