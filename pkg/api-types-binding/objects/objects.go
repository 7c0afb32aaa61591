package objects

import (
	apiobjects "github.com/azure/feast-azure/api-types/objects"
	kdb "github.com/azure/feast-azure/pkg/db"
)

func Compose(obj kdb.Object) apiobjects.Payload {
	return apiobjects.Payload{Proto: apiobjects.Proto(obj.Proto)}
}

func ComposeAll(objs []kdb.Object) []apiobjects.Payload {
	ret := make([]apiobjects.Payload, 0, len(objs))
	for _, o := range objs {
		ret = append(ret, Compose(o))
	}
	return ret
}
