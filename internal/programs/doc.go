// Package programs holds xc programs in their generated form: each file is
// what the compiler emits for one source file, registering its entry point
// and recorded cases with the driver from init.
package programs
