// Package capture records log entries during a test and checks them against
// expectations.
//
// A Buffer is an append-only, goroutine-safe list of entries. A Window
// brackets the capture: Open starts every registered Source (each attaches to
// its logging framework, remembers the framework's prior configuration and
// raises verbosity), Close stops them in reverse order and restores that
// configuration. Close must run on every exit path, so pair it with defer or
// t.Cleanup:
//
//	w, err := capture.Start(slogsource.New())
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer w.Close()
//
//	svc.Run()
//
//	if err := w.Buffer().ContainsInOrder(
//	    expect.Info("starting"),
//	    expect.Info(expect.StartsWith("listening on")),
//	); err != nil {
//	    t.Error(err)
//	}
//
// The strategies (IsEmpty, Contains, ContainsOnly, ContainsExactly,
// ContainsInOrder) run against a snapshot, so entries recorded while a
// strategy runs are not observed by it.
//
// # Sources
//
// Sources are plain implementations of the Source interface and are passed
// explicitly; there is no registry. See the packages under pkg/source.
//
// # Context
//
// NewContext and FromContext carry the active buffer through a
// context.Context. WithProperties attaches contextual properties that sources
// copy onto every entry logged with that context.
package capture
