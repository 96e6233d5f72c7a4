//go:generate mockgen -source=../kv_store.go             -destination=./mock_kv_store.go             -package=mocks
//go:generate mockgen -source=../result_cache.go         -destination=./mock_result_cache.go         -package=mocks
//go:generate mockgen -source=../order_search.go         -destination=./mock_order_search.go         -package=mocks
//go:generate mockgen -source=../order_lookup_service.go -destination=./mock_order_lookup_service.go -package=mocks
//go:generate mockgen -source=../logger.go               -destination=./mock_logger.go               -package=mocks

package mocks
