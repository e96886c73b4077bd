// Package redis stores playback sessions in Redis and provides the distributed lock that
// lets several pdaboat replicas share one session store.
package redis
