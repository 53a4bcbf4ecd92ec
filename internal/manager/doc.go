// Package manager owns the lifecycle of the single loaded model backend and
// the conversation that feeds it. It is structured into small files by concern:
//
//   - manager.go: core Manager type, load/generate entry points, settings.
//   - unload.go: releasing the active backend.
//   - config.go: ManagerConfig, BackendConfig and NewWithConfig defaults.
//   - types.go: State, Snapshot and the Backend/BackendFactory contract.
//   - factories.go: DefaultFactories dispatching on model format.
//   - errors.go: error types and predicates (IsModelNotFound, IsInvalidInput, ...).
//   - events.go: Event, EventPublisher and the event names.
//   - status_report.go: Snapshot/Ready reporting.
//   - sanity.go: which formats this build can load.
//
// Build tags and runtimes:
//
//   - In-process llama (standard):
//     Uses go-llama.cpp. Enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     adapter_llama_stub.go is compiled when the tag is not set.
//
//   - OpenAI-compatible completion server:
//     adapter_llama_server.go, always built. Serves HuggingFace and ONNX
//     models, and GGUF/GGML when llama support is not compiled in.
//
// External packages should use public methods only (New/NewWithConfig,
// LoadByID, GenerateResponse, Snapshot, ...). Internal types are subject to change.
package manager
