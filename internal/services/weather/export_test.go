package weather

var WrapFetchError = fetchFailed
