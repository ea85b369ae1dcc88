package models

// Ciphertext is a string alias representing one encrypted value in its
// base64, transport-safe form. The structure of the underlying blob is
// known only to the cipher codec; stores treat it as opaque text.
type Ciphertext string
