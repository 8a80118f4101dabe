package container

// WriterOption configures Write's compression behavior. Unlike
// ReaderOption, applying one can fail — WithCompressionLevel rejects an
// out-of-range level when Write applies the options, before any encoding
// work starts.
type WriterOption func(*writerConfig) error

func applyWriterOptions(cfg *writerConfig, opts ...WriterOption) error {
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return err
		}
	}

	return nil
}

// ReaderOption configures a Reader's verification and codec behavior.
// Every ReaderOption is infallible: there is no reader-side knob that can
// be given an invalid value.
type ReaderOption func(*readerConfig)

func applyReaderOptions(cfg *readerConfig, opts ...ReaderOption) {
	for _, opt := range opts {
		opt(cfg)
	}
}
