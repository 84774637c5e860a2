// Package messaging abstracts the message broker behind a small publish and
// consume API so modules can emit and handle events without caring whether
// the deployment runs NSQ, NATS or Kafka.
package messaging
