// Package guidance produces explanatory placeholder specs for intents that
// could not be resolved against a service's live metric inventory.
//
// A guidance panel is a non-data artifact: it carries the intent's
// instrumentation advice and, where derivable from the technology tag, the
// name of an exporter that would supply the missing metric, so the consumer
// can render "install the X exporter" instead of a bare "no data" message.
// It is never mistakable for zero-valued data downstream.
package guidance
