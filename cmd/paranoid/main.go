// Command paranoid runs a demo web app protected by the session fingerprint guard
// and computes fingerprint tokens from the command line.
package main

func main() {
	Execute()
}
