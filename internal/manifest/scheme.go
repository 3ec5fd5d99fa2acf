package manifest

var (
	bOutputs = []byte("outputs") // output path -> fingerprint json
	bBuild   = []byte("build")   // run bookkeeping
)

var keyLastCount = []byte("last_count")
