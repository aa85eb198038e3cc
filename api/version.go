package api

// Version is the library version reported in the User-Agent header.
const Version = "0.4.0"

const defaultUserAgent = "birdwire/" + Version
