package handoff

// Lifecycle Messages
const (
	logProducerStarted  = "Producer started"
	logProducerFinished = "Producer finished, queue closed"
	logConsumerStarted  = "Consumer started"
	logConsumerFinished = "Consumer finished"
	logTransferStarted  = "Transfer started"
	logTransferFinished = "Transfer finished"
)

// Error Messages
const (
	logEnqueueError = "Error encountered while enqueueing, stopping"
	logAppendError  = "Error encountered while appending to destination, stopping"
	logRunCancelled = "Run cancelled, closing queue to release workers"
)

// Debug Messages
const (
	logStateTransition = "State transition"
	logValueProduced   = "Value produced"
	logValueConsumed   = "Value consumed"
)
