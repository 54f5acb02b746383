package source

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 文档class取值
const (
	classWay      = "way"
	classRelation = "relation"
)

type wayDocument struct {
	Class string `bson:"class"`
	Data  Way    `bson:"data"`
}

type relationDocument struct {
	Class string      `bson:"class"`
	Data  rawRelation `bson:"data"`
}

// NewClient 连接MongoDB
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

// LoadMongo 从集合读取 {class: "way"|"relation", data: {...}} 文档
func LoadMongo(ctx context.Context, coll *mongo.Collection) (*Dataset, error) {
	log.Infof("get ways from %s.%s", coll.Database().Name(), coll.Name())
	wayCur, err := coll.Find(ctx, bson.M{"class": classWay})
	if err != nil {
		return nil, errors.Wrap(err, "find ways")
	}
	var wayDocs []wayDocument
	if err := wayCur.All(ctx, &wayDocs); err != nil {
		return nil, errors.Wrap(err, "decode ways")
	}
	ways := make([]Way, 0, len(wayDocs))
	for _, doc := range wayDocs {
		if !routable(doc.Data.Tags) {
			continue
		}
		normalize(doc.Data.Tags)
		ways = append(ways, doc.Data)
	}

	relCur, err := coll.Find(ctx, bson.M{"class": classRelation})
	if err != nil {
		return nil, errors.Wrap(err, "find relations")
	}
	var relDocs []relationDocument
	if err := relCur.All(ctx, &relDocs); err != nil {
		return nil, errors.Wrap(err, "decode relations")
	}
	raws := make([]rawRelation, 0, len(relDocs))
	for _, doc := range relDocs {
		if isRestriction(doc.Data.Tags) {
			raws = append(raws, doc.Data)
		}
	}
	log.Infof("read %d ways, %d restriction relations", len(ways), len(raws))
	return &Dataset{Ways: ways, Relations: resolve(ways, raws)}, nil
}
