// Package main
//
// @title           API Banco Digital
// @version         1.0
// @description     Minimal banking API: customers with CPF validation, deposits, withdrawals and transfers against an overdraft limit, with Kafka events and metrics.
// @BasePath        /v1
package main
