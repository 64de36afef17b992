package storage

// Package storage provides the SQLite-backed inventory ledger: embedded
// schema migrations, default classification seeding, and repositories for
// stages, grades, product types, and inventory batches behind a single
// serialized writer connection.
